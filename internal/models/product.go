package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus represents the listing state of a product.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// PaymentFrequency represents the coupon payment cadence of an interest
// product. Dividend products carry no frequency.
type PaymentFrequency string

const (
	FrequencyQuarterly PaymentFrequency = "quarterly"
	FrequencyBiannual  PaymentFrequency = "biannual"
	FrequencyAnnual    PaymentFrequency = "annual"
)

// MaturityUnit is the unit of a product's maturity term.
type MaturityUnit string

const (
	MaturityUnitMonths MaturityUnit = "months"
	MaturityUnitYears  MaturityUnit = "years"
)

// Product represents a financial product listed on the platform. An interest
// product carries a payment frequency, coupon rate, and maturity term; a
// dividend product carries none of these. AvailableVolume is the unsold
// remainder of Quantity and never exceeds it.
type Product struct {
	Base
	Name            string          `gorm:"not null" json:"name"`
	Status          ProductStatus   `gorm:"not null;default:active" json:"status"`
	IssuerID        string          `gorm:"type:uuid;not null" json:"issuer_id"`
	Quantity        int64           `gorm:"not null" json:"quantity"`
	AvailableVolume int64           `gorm:"not null" json:"available_volume"`
	TicketSize      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"ticket_size"`
	Currency        string          `gorm:"size:3;not null;default:EUR" json:"currency"`
	ListingDate     time.Time       `gorm:"not null" json:"listing_date"`

	// Interest products only.
	PaymentFrequency PaymentFrequency `json:"payment_frequency,omitempty"`
	CouponRate       decimal.Decimal  `gorm:"type:numeric(6,3)" json:"coupon_rate"`
	Maturity         int              `json:"maturity,omitempty"`
	MaturityUnit     MaturityUnit     `json:"maturity_unit,omitempty"`

	Issuer User `gorm:"foreignKey:IssuerID" json:"issuer,omitempty"`
}

// SoldVolume returns the number of units already placed with investors.
func (p *Product) SoldVolume() int64 {
	return p.Quantity - p.AvailableVolume
}
