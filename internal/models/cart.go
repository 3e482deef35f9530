package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartItem lives in Redis only; the order endpoint re-validates everything
// against the products collection before any money math happens.
type CartItem struct {
	ProductID primitive.ObjectID `json:"productId"`
	Name      string             `json:"name"`
	Price     float64            `json:"price"`
	Quantity  int                `json:"quantity"`
	Size      string             `json:"size,omitempty"`
	Color     string             `json:"color,omitempty"`
	Image     string             `json:"image,omitempty"`
}
