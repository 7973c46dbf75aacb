package models

// Holding links a product to an investor with the investor's currently-held,
// unsold units.
type Holding struct {
	Base
	ProductID       string `gorm:"type:uuid;not null;index" json:"product_id"`
	InvestorID      string `gorm:"type:uuid;not null;index" json:"investor_id"`
	AvailableVolume int64  `gorm:"not null" json:"available_volume"`

	Product  Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Investor User    `gorm:"foreignKey:InvestorID" json:"investor,omitempty"`
}
