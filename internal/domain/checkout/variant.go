package checkout

import "strings"

// CheckoutVariant identifies which checkout UI handled a request
type CheckoutVariant string

const (
	VariantClassic CheckoutVariant = "classic"
	VariantBlock   CheckoutVariant = "block"
)

// IsValid checks if the variant is known
func (v CheckoutVariant) IsValid() bool {
	return v == VariantClassic || v == VariantBlock
}

// String returns the string representation of the variant
func (v CheckoutVariant) String() string {
	return string(v)
}

// Markers that identify a page built with the block checkout
var blockCheckoutMarkers = []string{
	"<!-- wp:woocommerce/checkout",
	"wp-block-woocommerce-checkout",
}

// DetectVariant inspects rendered page content for the block checkout marker
func DetectVariant(content string) CheckoutVariant {
	for _, m := range blockCheckoutMarkers {
		if strings.Contains(content, m) {
			return VariantBlock
		}
	}
	return VariantClassic
}

// PageView describes a rendered storefront page
type PageView struct {
	Path       string
	IsCheckout bool
	Variant    CheckoutVariant
}
