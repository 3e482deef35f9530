package utils

import "math"

const (
	// Flat shipping fee, waived once the subtotal reaches the threshold.
	ShippingFee           = 200.0
	FreeShippingThreshold = 5000.0

	// Flat tax rate applied to the subtotal.
	TaxRate = 0.05
)

// ShippingCost returns the flat fee, waived above the free-shipping threshold.
func ShippingCost(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return ShippingFee
}

// Tax is a flat percentage of the subtotal, rounded to the nearest unit.
func Tax(subtotal float64) float64 {
	return math.Round(subtotal * TaxRate)
}

// OrderTotal combines the pricing components.
// total = subtotal - discount + shipping + tax
func OrderTotal(subtotal, discount, shipping, tax float64) float64 {
	return subtotal - discount + shipping + tax
}

// SalePrice derives the selling price from the entered original price and
// discount percentage, rounded to two decimals.
func SalePrice(originalPrice, discountPercent float64) float64 {
	price := originalPrice * (1 - discountPercent/100)
	return math.Round(price*100) / 100
}
