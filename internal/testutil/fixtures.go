package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fundwerk/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAdmin creates an active admin user with a unique email.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, fmt.Sprintf("admin%d@test.com", nextID()), models.RoleAdmin)
}

// CreateTestIssuer creates an active issuer user with a unique email.
func CreateTestIssuer(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, fmt.Sprintf("issuer%d@test.com", nextID()), models.RoleIssuer)
}

// CreateTestInvestor creates an active investor user with a unique email.
func CreateTestInvestor(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, fmt.Sprintf("investor%d@test.com", nextID()), models.RoleInvestor)
}

// CreateTestInvestorWithEmail creates an investor with the given email.
// Emails are not unique, so two investor records may share an address.
func CreateTestInvestorWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	return createUser(t, db, email, models.RoleInvestor)
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Email:     email,
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", nextID()),
		Role:      role,
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestInterestProduct creates an active interest-bearing product with
// the given frequency, listed on listingDate with a maturity term in years.
func CreateTestInterestProduct(t *testing.T, db *gorm.DB, issuerID string, freq models.PaymentFrequency, listingDate time.Time, maturityYears int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:             fmt.Sprintf("Test Bond %d", nextID()),
		Status:           models.ProductStatusActive,
		IssuerID:         issuerID,
		Quantity:         1000,
		AvailableVolume:  1000,
		TicketSize:       decimal.NewFromInt(1000),
		Currency:         "EUR",
		ListingDate:      listingDate,
		PaymentFrequency: freq,
		CouponRate:       decimal.NewFromFloat(5.0),
		Maturity:         maturityYears,
		MaturityUnit:     models.MaturityUnitYears,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

// CreateTestDividendProduct creates an active product without a payment
// frequency or maturity term.
func CreateTestDividendProduct(t *testing.T, db *gorm.DB, issuerID string, listingDate time.Time) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:            fmt.Sprintf("Test Share %d", nextID()),
		Status:          models.ProductStatusActive,
		IssuerID:        issuerID,
		Quantity:        1000,
		AvailableVolume: 1000,
		TicketSize:      decimal.NewFromInt(100),
		Currency:        "EUR",
		ListingDate:     listingDate,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

// SellUnits moves units from a product's available volume into a holding for
// the given investor.
func SellUnits(t *testing.T, db *gorm.DB, product *models.Product, investorID string, units int64) *models.Holding {
	t.Helper()

	if err := db.Model(product).Update("available_volume", gorm.Expr("available_volume - ?", units)).Error; err != nil {
		t.Fatalf("failed to reduce available volume: %v", err)
	}
	product.AvailableVolume -= units

	holding := &models.Holding{
		ProductID:       product.ID,
		InvestorID:      investorID,
		AvailableVolume: units,
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}

// CreateTestRepayment records a processed principal repayment against a
// product.
func CreateTestRepayment(t *testing.T, db *gorm.DB, productID string, amount decimal.Decimal, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		ProductID:   productID,
		Status:      models.TransactionStatusProcessed,
		Type:        models.TransactionTypePayment,
		PaymentType: models.PaymentTypeRepayment,
		Amount:      amount,
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test repayment: %v", err)
	}
	return tx
}
