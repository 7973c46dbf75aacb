package models

// UserRole represents a user's role on the platform.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleIssuer     UserRole = "issuer"
	RoleInvestor   UserRole = "investor"
	RoleCompliance UserRole = "compliance"
)

// User represents a platform user. Admins have no product linkage, issuers
// own products, investors hold holdings.
type User struct {
	Base
	// Email is not unique: historical investor records may share an
	// address, which the reminder aggregation merges into one recipient.
	Email     string   `gorm:"index;not null" json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Role      UserRole `gorm:"not null" json:"role"`
	IsActive  bool     `gorm:"default:true" json:"is_active"`

	Holdings []Holding `gorm:"foreignKey:InvestorID" json:"holdings,omitempty"`
	Products []Product `gorm:"foreignKey:IssuerID" json:"products,omitempty"`
}
