package utils

import "testing"

func TestShippingCost_WaivedAboveThreshold(t *testing.T) {
	if got := ShippingCost(4800); got != 200 {
		t.Fatalf("subtotal 4800: expected shipping 200, got %v", got)
	}
	if got := ShippingCost(5200); got != 0 {
		t.Fatalf("subtotal 5200: expected free shipping, got %v", got)
	}
	if got := ShippingCost(5000); got != 0 {
		t.Fatalf("subtotal at threshold: expected free shipping, got %v", got)
	}
}

func TestTax_RoundsToNearestUnit(t *testing.T) {
	if got := Tax(1000); got != 50 {
		t.Fatalf("expected tax 50, got %v", got)
	}
	// 1009 * 0.05 = 50.45 -> 50
	if got := Tax(1009); got != 50 {
		t.Fatalf("expected rounded tax 50, got %v", got)
	}
	// 1010 * 0.05 = 50.5 -> 51
	if got := Tax(1010); got != 51 {
		t.Fatalf("expected rounded tax 51, got %v", got)
	}
}

func TestOrderTotal(t *testing.T) {
	total := OrderTotal(4800, 100, 200, 240)
	if total != 5140 {
		t.Fatalf("expected total 5140, got %v", total)
	}
}

func TestSalePrice(t *testing.T) {
	if got := SalePrice(2000, 25); got != 1500 {
		t.Fatalf("expected sale price 1500, got %v", got)
	}
	if got := SalePrice(999, 0); got != 999 {
		t.Fatalf("zero discount should keep the price, got %v", got)
	}
	// 1999 * 0.67 = 1339.33
	if got := SalePrice(1999, 33); got != 1339.33 {
		t.Fatalf("expected two-decimal rounding to 1339.33, got %v", got)
	}
}
