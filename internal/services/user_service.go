package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fundwerk/internal/errors"
	"fundwerk/internal/models"
)

// userService handles user-related store access.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// FindAdmins returns all active admin users.
func (s *userService) FindAdmins() ([]models.User, error) {
	var admins []models.User
	if err := s.db.
		Where("role = ? AND is_active = ?", models.RoleAdmin, true).
		Order("email").
		Find(&admins).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return admins, nil
}

// FindByIDs returns the users matching the given IDs, in the order the IDs
// were requested. Unknown IDs are silently skipped.
func (s *userService) FindByIDs(ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	ordered := make([]models.User, 0, len(users))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
		}
	}
	return ordered, nil
}

// FindByID retrieves a user by ID.
func (s *userService) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
