package models

// NotificationType identifies which reminder produced a notification.
type NotificationType string

const (
	NotificationRemindForMaturity NotificationType = "remind_for_maturity"
	NotificationRemindForPayment  NotificationType = "remind_for_payment"
)

// Notification is a persisted notification record. The reminder engine only
// ever creates notifications; it never mutates or deletes them. A nil
// ReceiverID marks an admin-facing notification.
type Notification struct {
	Base
	EntityType      string           `gorm:"not null" json:"entity_type"`
	RelatedEntityID string           `gorm:"type:uuid;not null;index" json:"related_entity_id"`
	Type            NotificationType `gorm:"not null;index" json:"type"`
	Text            string           `gorm:"not null" json:"text"`
	TranslationData string           `json:"translation_data,omitempty"`
	ReceiverID      *string          `gorm:"type:uuid" json:"receiver_id,omitempty"`
}
