package services

import (
	"gorm.io/gorm"

	apperrors "fundwerk/internal/errors"
	"fundwerk/internal/models"
)

// holdingService handles holding-related store access.
type holdingService struct {
	db *gorm.DB
}

// NewHoldingService creates a new HoldingServicer.
func NewHoldingService(db *gorm.DB) HoldingServicer {
	return &holdingService{db: db}
}

// FindActiveByProduct returns the holdings with remaining volume for a product.
func (s *holdingService) FindActiveByProduct(productID string) ([]models.Holding, error) {
	var holdings []models.Holding
	if err := s.db.
		Where("product_id = ? AND available_volume > 0", productID).
		Order("created_at, id").
		Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holdings, nil
}
