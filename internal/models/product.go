package models

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Availability labels shown on the product page
const (
	AvailabilityInStock    = "In Stock"
	AvailabilityOutOfStock = "Out Of Stock"
	AvailabilityPreOrder   = "Pre-Order"
	AvailabilityTwoToThree = "2-3 Days"
)

// Product is a catalog entry rendered by the storefront
type Product struct {
	ID           int64
	Name         string
	Brand        string
	Code         string
	RewardPoints int
	Availability string
	// Prices are in cents. PriceCents includes tax.
	PriceCents int64
	ExTaxCents int64
	Images     []string
}

// Domain errors
var (
	ErrInvalidProductName = errors.New("product name cannot be empty")
	ErrInvalidProductCode = errors.New("product code cannot be empty")
	ErrInvalidPrice       = errors.New("price must not be negative or below the ex-tax price")
	ErrProductNotFound    = errors.New("product not found")
)

// Validate checks a product is fit for the catalog
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidProductName
	}
	if strings.TrimSpace(p.Code) == "" {
		return ErrInvalidProductCode
	}
	if p.ExTaxCents < 0 || p.PriceCents < p.ExTaxCents {
		return ErrInvalidPrice
	}
	return nil
}

// Matches reports whether the product name contains term, ignoring case
func (p *Product) Matches(term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return false
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(term))
}

// FormattedPrice returns the tax-inclusive price, e.g. $2,000.00
func (p *Product) FormattedPrice() string {
	return FormatMoney(p.PriceCents)
}

// FormattedExTax returns the price without tax
func (p *Product) FormattedExTax() string {
	return FormatMoney(p.ExTaxCents)
}

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatMoney renders cents as US dollars with thousands separators
func FormatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return moneyPrinter.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
