package reminder

import (
	"time"

	"fundwerk/internal/calendar"
	"fundwerk/internal/models"
)

// Kind tags the product variant, decided once at ingestion instead of
// re-probing optional fields throughout the pass.
type Kind int

const (
	// KindInterest marks products paying periodic coupon interest until a
	// fixed maturity.
	KindInterest Kind = iota
	// KindDividend marks products paying discretionary dividends with no
	// fixed maturity.
	KindDividend
)

// Instrument is a product snapshot enriched with its variant tag and, for
// interest products, the resolved maturity date.
type Instrument struct {
	Product      models.Product
	Kind         Kind
	MaturityDate time.Time // zero for dividend instruments
}

// NewInstrument decides the product variant and resolves the maturity date.
// A product with a payment frequency and a maturity term is an interest
// product; everything else is a dividend product.
func NewInstrument(p models.Product) Instrument {
	if p.PaymentFrequency != "" && p.Maturity > 0 {
		return Instrument{
			Product:      p,
			Kind:         KindInterest,
			MaturityDate: maturityDate(p),
		}
	}
	return Instrument{Product: p, Kind: KindDividend}
}

// maturityDate adds the maturity term to the listing date. The term is
// either months or years, never both.
func maturityDate(p models.Product) time.Time {
	listing := calendar.Midnight(p.ListingDate)
	if p.MaturityUnit == models.MaturityUnitYears {
		return listing.AddDate(p.Maturity, 0, 0)
	}
	return listing.AddDate(0, p.Maturity, 0)
}
