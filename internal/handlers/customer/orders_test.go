package customer

import (
	"errors"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"sway_back_end/internal/models"
)

func activeProduct() models.Product {
	return models.Product{
		ID:          primitive.NewObjectID(),
		Name:        "Linen Kurta",
		Description: "Lightweight summer kurta",
		SKU:         "NOM-1700000000000",
		Price:       1600,
		Stock:       5,
		InStock:     true,
		Sizes:       []string{"S", "M", "L"},
		Colors:      []string{"blue", "white"},
		BrandName:   "Nomi Ansari",
		BrandEmail:  "hello@nomiansari.pk",
		Thumbnail:   "http://minio/sway/thumbnails/kurta.jpg",
		Status:      "active",
	}
}

func TestCheckItem_EnoughStock(t *testing.T) {
	p := activeProduct()
	if oe := checkItem(p, orderItemRequest{Quantity: 3, Size: "M", Color: "blue"}); oe != nil {
		t.Fatalf("expected valid item, got %q", oe.message)
	}
}

func TestCheckItem_InsufficientStock(t *testing.T) {
	p := activeProduct()
	p.Stock = 2

	oe := checkItem(p, orderItemRequest{Quantity: 3})
	if oe == nil {
		t.Fatal("expected a stock rejection")
	}
	if oe.status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", oe.status)
	}
	if oe.message != "Insufficient stock for Linen Kurta. Available: 2" {
		t.Fatalf("unexpected message %q", oe.message)
	}
}

func TestCheckItem_InvalidSize(t *testing.T) {
	p := activeProduct()

	oe := checkItem(p, orderItemRequest{Quantity: 1, Size: "XXL"})
	if oe == nil {
		t.Fatal("expected a size rejection")
	}
	if oe.status != http.StatusBadRequest || oe.message != "Invalid size for Linen Kurta" {
		t.Fatalf("unexpected rejection %d %q", oe.status, oe.message)
	}
}

func TestCheckItem_InvalidColor(t *testing.T) {
	p := activeProduct()

	oe := checkItem(p, orderItemRequest{Quantity: 1, Color: "chartreuse"})
	if oe == nil || oe.message != "Invalid color for Linen Kurta" {
		t.Fatalf("expected a color rejection, got %+v", oe)
	}
}

func TestCheckItem_InactiveProduct(t *testing.T) {
	p := activeProduct()
	p.Status = "inactive"

	if oe := checkItem(p, orderItemRequest{Quantity: 1}); oe == nil {
		t.Fatal("expected an availability rejection for an inactive product")
	}
}

func TestCheckItem_OutOfStockFlag(t *testing.T) {
	p := activeProduct()
	p.InStock = false

	if oe := checkItem(p, orderItemRequest{Quantity: 1}); oe == nil {
		t.Fatal("expected an availability rejection for out-of-stock product")
	}
}

func TestSnapshotItem_FreezesProductData(t *testing.T) {
	p := activeProduct()
	item := snapshotItem(p, orderItemRequest{Quantity: 2, Size: "L", Color: "white"})

	if item.ProductID != p.ID {
		t.Fatalf("snapshot must reference the product id")
	}
	if item.Name != p.Name || item.SKU != p.SKU || item.Price != p.Price {
		t.Fatalf("snapshot lost product fields: %+v", item)
	}
	if item.BrandName != "Nomi Ansari" || item.BrandEmail != "hello@nomiansari.pk" {
		t.Fatalf("snapshot lost brand fields: %+v", item)
	}
	if item.Image != p.Thumbnail {
		t.Fatalf("expected the thumbnail as the snapshot image, got %q", item.Image)
	}
	if item.Quantity != 2 || item.Size != "L" || item.Color != "white" {
		t.Fatalf("snapshot lost the requested variant: %+v", item)
	}
}

func TestSnapshotItem_FallsBackToFirstImage(t *testing.T) {
	p := activeProduct()
	p.Thumbnail = ""
	p.Images = []models.ProductImage{{URL: "http://minio/sway/products/a.jpg", StandardURL: "http://minio/sway/products/a.jpg"}}

	item := snapshotItem(p, orderItemRequest{Quantity: 1})
	if item.Image != "http://minio/sway/products/a.jpg" {
		t.Fatalf("expected first image fallback, got %q", item.Image)
	}
}

func TestPaymentIntentStamped(t *testing.T) {
	// A client secret must only go out once the intent id is on the order —
	// the webhook matches on payment.transactionId and nothing else.
	if paymentIntentStamped(nil, errors.New("write failed")) {
		t.Fatal("a failed write must not count as stamped")
	}
	if paymentIntentStamped(&mongo.UpdateResult{MatchedCount: 0}, nil) {
		t.Fatal("an update matching no document must not count as stamped")
	}
	if !paymentIntentStamped(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil) {
		t.Fatal("a matched write is stamped")
	}
}

func TestBuildPricing_TotalIdentity(t *testing.T) {
	pricing := buildPricing(4800, 0)

	if pricing.ShippingCost != 200 {
		t.Fatalf("subtotal 4800 should pay shipping, got %v", pricing.ShippingCost)
	}
	want := pricing.Subtotal - pricing.Discount + pricing.ShippingCost + pricing.Tax
	if pricing.Total != want {
		t.Fatalf("total %v violates the pricing identity (want %v)", pricing.Total, want)
	}
}

func TestBuildPricing_FreeShipping(t *testing.T) {
	pricing := buildPricing(5200, 0)
	if pricing.ShippingCost != 0 {
		t.Fatalf("subtotal 5200 should ship free, got %v", pricing.ShippingCost)
	}
}

func TestBuildPricing_MatchesItemSum(t *testing.T) {
	p := activeProduct()
	items := []orderItemRequest{{Quantity: 2}, {Quantity: 1}}

	subtotal := 0.0
	for _, it := range items {
		subtotal += p.Price * float64(it.Quantity)
	}

	pricing := buildPricing(subtotal, 0)
	if pricing.Subtotal != 4800 {
		t.Fatalf("expected subtotal 4800 for 3x1600, got %v", pricing.Subtotal)
	}
	if pricing.Total != 4800+200+pricing.Tax {
		t.Fatalf("total %v does not match items plus adjustments", pricing.Total)
	}
}
