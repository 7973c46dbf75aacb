package services

import (
	"gorm.io/gorm"

	apperrors "fundwerk/internal/errors"
	"fundwerk/internal/models"
	"fundwerk/internal/pagination"
)

// notificationService handles notification persistence.
type notificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(db *gorm.DB) NotificationServicer {
	return &notificationService{db: db}
}

// Create persists a notification record.
func (s *notificationService) Create(n *models.Notification) error {
	if n.EntityType == "" || n.RelatedEntityID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "entity type and related entity are required")
	}
	if err := s.db.Create(n).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// List returns a paginated list of notifications, newest first.
func (s *notificationService) List(filter NotificationFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
	page.Defaults()

	query := s.db.Model(&models.Notification{})
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.ReceiverID != nil {
		query = query.Where("receiver_id = ?", *filter.ReceiverID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var notifications []models.Notification
	if err := query.
		Order("created_at DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&notifications).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(notifications, page.Page, page.PageSize, total)
	return &resp, nil
}
