package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fundwerk/internal/errors"
	"fundwerk/internal/models"
)

// transactionService handles transaction-related store access.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// RepaidAmount sums the amounts of processed repayment transactions for a
// product. The sum is computed in Go to keep decimal precision independent
// of the database's numeric handling.
func (s *transactionService) RepaidAmount(productID string) (decimal.Decimal, error) {
	var transactions []models.Transaction
	if err := s.db.
		Where("product_id = ? AND status = ? AND type = ? AND payment_type = ?",
			productID,
			models.TransactionStatusProcessed,
			models.TransactionTypePayment,
			models.PaymentTypeRepayment,
		).
		Find(&transactions).Error; err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.Amount)
	}
	return total, nil
}
