// Package notificationrepo persists the append-only notification log.
package notificationrepo

import (
	"time"

	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO is one row of the notifications table, keyed by its log sequence.
type NotificationDTO struct {
	Sequence       int64     `gorm:"primaryKey;autoIncrement:false"`
	ID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	OrderID        string    `gorm:"not null;index"`
	Email          string    `gorm:"not null"`
	Message        string    `gorm:"not null"`
	Type           string    `gorm:"not null"`
	TrackingNumber string
	CreatedAt      time.Time `gorm:"not null"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification, sequence int64) NotificationDTO {
	return NotificationDTO{
		Sequence:       sequence,
		ID:             n.ID().Bytes(),
		OrderID:        n.OrderID(),
		Email:          n.Email(),
		Message:        n.Message(),
		Type:           string(n.Type()),
		TrackingNumber: n.TrackingNumber(),
		CreatedAt:      n.CreatedAt().UTC(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id,
		dto.OrderID,
		dto.Email,
		dto.Message,
		notification.Type(dto.Type),
		dto.TrackingNumber,
		dto.CreatedAt.UTC(),
		dto.Sequence,
	)
}
