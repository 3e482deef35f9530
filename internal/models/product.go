package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductImage keeps both resolutions so the storefront can pick per context.
type ProductImage struct {
	URL         string `bson:"url" json:"url"`
	StandardURL string `bson:"standardUrl" json:"standardUrl"`
}

type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name           string             `bson:"name" json:"name"`
	Slug           string             `bson:"slug" json:"slug"`
	SKU            string             `bson:"sku" json:"sku"`
	Description    string             `bson:"description" json:"description"`
	Category       string             `bson:"category" json:"category"`
	SubCategory    string             `bson:"subCategory,omitempty" json:"subCategory,omitempty"`
	Price          float64            `bson:"price" json:"price"`
	OriginalPrice  float64            `bson:"originalPrice" json:"originalPrice"`
	Discount       float64            `bson:"discount" json:"discount"`
	Stock          int                `bson:"stock" json:"stock"`
	InStock        bool               `bson:"inStock" json:"inStock"`
	Sizes          []string           `bson:"sizes,omitempty" json:"sizes,omitempty"`
	Colors         []string           `bson:"colors,omitempty" json:"colors,omitempty"`
	Images         []ProductImage     `bson:"images,omitempty" json:"images,omitempty"`
	Thumbnail      string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	BrandID        string             `bson:"brandId" json:"brandId"`
	BrandName      string             `bson:"brandName" json:"brandName"`
	BrandEmail     string             `bson:"brandEmail,omitempty" json:"brandEmail,omitempty"`
	Status         string             `bson:"status" json:"status"` // active, inactive
	Tags           []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Features       []string           `bson:"features,omitempty" json:"features,omitempty"`
	Specifications map[string]string  `bson:"specifications,omitempty" json:"specifications,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
