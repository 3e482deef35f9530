package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusReturned   = "returned"
	OrderStatusRefunded   = "refunded"
)

// OrderItem is a snapshot of the product at purchase time. Later edits to
// the live product must never alter what the customer actually bought.
type OrderItem struct {
	ProductID   primitive.ObjectID `bson:"productId" json:"productId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	BrandName   string             `bson:"brandName" json:"brandName"`
	BrandEmail  string             `bson:"brandEmail,omitempty" json:"brandEmail,omitempty"`
	SKU         string             `bson:"sku" json:"sku"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Size        string             `bson:"size,omitempty" json:"size,omitempty"`
	Color       string             `bson:"color,omitempty" json:"color,omitempty"`
}

type OrderPricing struct {
	Subtotal     float64 `bson:"subtotal" json:"subtotal"`
	Discount     float64 `bson:"discount" json:"discount"`
	ShippingCost float64 `bson:"shippingCost" json:"shippingCost"`
	Tax          float64 `bson:"tax" json:"tax"`
	Total        float64 `bson:"total" json:"total"`
}

type OrderPayment struct {
	Method        string `bson:"method" json:"method"` // cod, card
	Status        string `bson:"status" json:"status"` // pending, paid, failed
	TransactionID string `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}

type StatusChange struct {
	Status    string    `bson:"status" json:"status"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
	ChangedAt time.Time `bson:"changedAt" json:"changedAt"`
}

type ShippingAddress struct {
	Label      string `bson:"label,omitempty" json:"label,omitempty"`
	FullName   string `bson:"fullName" json:"fullName"`
	Phone      string `bson:"phone" json:"phone"`
	Street     string `bson:"street" json:"street"`
	Apartment  string `bson:"apartment,omitempty" json:"apartment,omitempty"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state,omitempty" json:"state,omitempty"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
}

type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OrderNumber       string             `bson:"orderNumber" json:"orderNumber"`
	CustomerID        string             `bson:"customerId" json:"customerId"`
	Items             []OrderItem        `bson:"items" json:"items"`
	Pricing           OrderPricing       `bson:"pricing" json:"pricing"`
	ShippingAddress   ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	Payment           OrderPayment       `bson:"payment" json:"payment"`
	Status            string             `bson:"status" json:"status"`
	StatusHistory     []StatusChange     `bson:"statusHistory" json:"statusHistory"`
	EstimatedDelivery time.Time          `bson:"estimatedDelivery" json:"estimatedDelivery"`
	Notes             string             `bson:"notes,omitempty" json:"notes,omitempty"`
	IsGift            bool               `bson:"isGift" json:"isGift"`
	GiftMessage       string             `bson:"giftMessage,omitempty" json:"giftMessage,omitempty"`
	Source            string             `bson:"source,omitempty" json:"source,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
