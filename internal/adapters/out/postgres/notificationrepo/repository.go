package notificationrepo

import (
	"context"

	"containerops/internal/core/domain/model/notification"

	"gorm.io/gorm"
)

// appendLockKey names the transaction-scoped advisory lock that serialises appends,
// so sequences are gapless and committed in order.
const appendLockKey int64 = 0x6e6f7469667931

// GormNotificationLog implements NotificationLog using GORM. Append must run inside a
// unit of work; outside one the advisory lock is released as soon as it is taken.
type GormNotificationLog struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

func NewGormNotificationLog(db *gorm.DB, tracker aggregateTracker) *GormNotificationLog {
	return &GormNotificationLog{
		db:      db,
		tracker: tracker,
	}
}

func (l *GormNotificationLog) Append(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	db := l.db.WithContext(ctx)
	if err := db.Exec("SELECT pg_advisory_xact_lock(?)", appendLockKey).Error; err != nil {
		return err
	}

	var last int64
	if err := db.Model(&NotificationDTO{}).Select("COALESCE(MAX(sequence), 0)").Scan(&last).Error; err != nil {
		return err
	}

	dto := fromDomain(n, last+1)
	if err := db.Create(&dto).Error; err != nil {
		return err
	}
	if err := n.AssignSequence(dto.Sequence); err != nil {
		return err
	}

	l.tracker.TrackAggregate(n.ID().String(), n)
	return nil
}

func (l *GormNotificationLog) ListByOrder(ctx context.Context, orderID string) ([]*notification.Notification, error) {
	var dtos []NotificationDTO
	err := l.db.WithContext(ctx).Where("order_id = ?", orderID).Order("sequence").Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (l *GormNotificationLog) ListAfter(ctx context.Context, after int64, limit int) ([]*notification.Notification, error) {
	query := l.db.WithContext(ctx).Where("sequence > ?", after).Order("sequence")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []NotificationDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (l *GormNotificationLog) List(ctx context.Context) ([]*notification.Notification, error) {
	var dtos []NotificationDTO
	if err := l.db.WithContext(ctx).Order("sequence").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func toDomainList(dtos []NotificationDTO) ([]*notification.Notification, error) {
	entries := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, n)
	}
	return entries, nil
}
