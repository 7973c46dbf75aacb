package services

import (
	"github.com/shopspring/decimal"

	"fundwerk/internal/models"
	"fundwerk/internal/pagination"
)

// ProductServicer defines the product store operations used by the worker.
type ProductServicer interface {
	FindByStatus(status models.ProductStatus) ([]models.Product, error)
	MarkMatured(productID string) error
}

// HoldingServicer defines the holding store operations used by the worker.
type HoldingServicer interface {
	// FindActiveByProduct returns the holdings with remaining volume for a
	// product, i.e. the product's current investors.
	FindActiveByProduct(productID string) ([]models.Holding, error)
}

// TransactionServicer defines the transaction store operations used by the worker.
type TransactionServicer interface {
	// RepaidAmount returns the principal repaid to date on a product: the
	// sum over processed repayment transactions.
	RepaidAmount(productID string) (decimal.Decimal, error)
}

// UserServicer defines the user store operations used by the worker.
type UserServicer interface {
	FindAdmins() ([]models.User, error)
	FindByIDs(ids []string) ([]models.User, error)
	FindByID(id string) (*models.User, error)
}

// NotificationFilter holds optional filter parameters for listing notifications.
type NotificationFilter struct {
	Type       *models.NotificationType
	ReceiverID *string
}

// NotificationServicer defines the notification sink operations used by the worker.
type NotificationServicer interface {
	Create(n *models.Notification) error
	List(filter NotificationFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error)
}
