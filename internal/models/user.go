package models

import "time"

type User struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"`
	Role      string    `bson:"role" json:"role"` // customer, brand
	BrandName string    `bson:"brandName,omitempty" json:"brandName,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
