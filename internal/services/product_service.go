package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fundwerk/internal/errors"
	"fundwerk/internal/models"
)

// productService handles product-related store access.
type productService struct {
	db *gorm.DB
}

// NewProductService creates a new ProductServicer.
func NewProductService(db *gorm.DB) ProductServicer {
	return &productService{db: db}
}

// FindByStatus returns all products with the given status, issuer included.
func (s *productService) FindByStatus(status models.ProductStatus) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Preload("Issuer").
		Where("status = ?", status).
		Order("listing_date, id").
		Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return products, nil
}

// MarkMatured flips a product's status to inactive. Flipping an already
// inactive product is a no-op, so repeated passes over the same snapshot
// cannot produce duplicate state changes.
func (s *productService) MarkMatured(productID string) error {
	res := s.db.Model(&models.Product{}).
		Where("id = ? AND status = ?", productID, models.ProductStatusActive).
		Update("status", models.ProductStatusInactive)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return apperrors.ErrProductNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	return nil
}
