package utils

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	slug := Slugify("  Summer Linen Shirt — Blue!  ")
	if !regexp.MustCompile(`^summer-linen-shirt-blue-[0-9a-f]{8}$`).MatchString(slug) {
		t.Fatalf("unexpected slug %q", slug)
	}

	a := Slugify("Same Name")
	b := Slugify("Same Name")
	if a == b {
		t.Fatalf("expected distinct slugs for identical names, got %q twice", a)
	}
}

func TestSlugify_EmptyName(t *testing.T) {
	slug := Slugify("???")
	if !strings.HasPrefix(slug, "product-") {
		t.Fatalf("expected fallback slug, got %q", slug)
	}
}

func TestGenerateSKU(t *testing.T) {
	sku := GenerateSKU("Nomi Ansari")
	if !strings.HasPrefix(sku, "NOM-") {
		t.Fatalf("expected brand prefix NOM-, got %q", sku)
	}

	if !strings.HasPrefix(GenerateSKU(""), "SWY-") {
		t.Fatalf("expected fallback prefix for empty brand name")
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	num := GenerateOrderNumber(now)
	if !regexp.MustCompile(`^SW-20250314-\d{4}$`).MatchString(num) {
		t.Fatalf("unexpected order number %q", num)
	}
}
