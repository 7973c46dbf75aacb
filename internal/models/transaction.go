package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus represents the processing state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusProcessed TransactionStatus = "processed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// TransactionType represents the type of transaction.
type TransactionType string

const (
	TransactionTypePayment    TransactionType = "payment"
	TransactionTypeInvestment TransactionType = "investment"
)

// PaymentType qualifies payment transactions.
type PaymentType string

const (
	PaymentTypeRepayment PaymentType = "repayment"
	PaymentTypeInterest  PaymentType = "interest"
	PaymentTypeDividend  PaymentType = "dividend"
)

// Transaction records a payment event against a product. The reminder engine
// only reads processed repayments to compute principal repaid to date.
type Transaction struct {
	Base
	ProductID   string            `gorm:"type:uuid;not null;index" json:"product_id"`
	UserID      *string           `gorm:"type:uuid" json:"user_id,omitempty"`
	Status      TransactionStatus `gorm:"not null" json:"status"`
	Type        TransactionType   `gorm:"not null" json:"type"`
	PaymentType PaymentType       `json:"payment_type,omitempty"`
	Amount      decimal.Decimal   `gorm:"type:numeric(18,2);not null" json:"amount"`
	Date        time.Time         `gorm:"not null" json:"date"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
