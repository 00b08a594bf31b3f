package product

import (
	"fmt"
	"math"
)

// Product is the catalogue entry that favorites and cart items refer to.
// Only ID is used for identity.
type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Currency string   `json:"currency,omitempty"`
	Image    string   `json:"image,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Brand    string   `json:"brand,omitempty"`
}

// FormatPrice renders an amount with two decimals and the currency code.
func FormatPrice(amount float64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%.2f %s", RoundPrice(amount), currency)
}

// RoundPrice rounds to cents.
func RoundPrice(amount float64) float64 {
	return math.Round(amount*100) / 100
}
