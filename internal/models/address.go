package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Address struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID     string             `bson:"userId" json:"userId"`
	Label      string             `bson:"label,omitempty" json:"label,omitempty"`
	FullName   string             `bson:"fullName" json:"fullName"`
	Phone      string             `bson:"phone" json:"phone"`
	Street     string             `bson:"street" json:"street"`
	Apartment  string             `bson:"apartment,omitempty" json:"apartment,omitempty"`
	City       string             `bson:"city" json:"city"`
	State      string             `bson:"state,omitempty" json:"state,omitempty"`
	PostalCode string             `bson:"postalCode" json:"postalCode"`
	Country    string             `bson:"country" json:"country"`
	IsDefault  bool               `bson:"isDefault" json:"isDefault"`
}
