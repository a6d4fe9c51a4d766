package deliveryrepo

import (
	"context"
	"errors"

	"containerops/internal/adapters/out/postgres/dbtypes"
	"containerops/internal/core/domain/model/delivery"
	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryRecordRepository implements DeliveryRecordRepository using GORM.
type GormDeliveryRecordRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormDeliveryRecordRepository binds the repository to db, which is the unit of
// work's transaction once it has begun.
func NewGormDeliveryRecordRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRecordRepository {
	return &GormDeliveryRecordRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new record. A second record for the same order or a taken tracking
// number fails with ports.ErrDuplicateKey.
func (r *GormDeliveryRecordRepository) Add(ctx context.Context, record *delivery.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dbtypes.TranslateWriteError(err, "delivery record for order", record.OrderID())
	}

	r.tracker.TrackAggregate(record.ID().String(), record)
	return nil
}

// Update writes the driver and the status back. A missing row is an
// *errs.ObjectNotFoundError.
func (r *GormDeliveryRecordRepository) Update(ctx context.Context, record *delivery.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).Model(&DeliveryRecordDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery record", record.ID().String())
	}

	r.tracker.TrackAggregate(record.ID().String(), record)
	return nil
}

// Get retrieves a record by its id.
func (r *GormDeliveryRecordRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Record, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves a record with SELECT ... FOR UPDATE, so driver updates of
// one record run one at a time. The row lock is only held when the repository is
// bound to a transaction.
func (r *GormDeliveryRecordRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Record, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *GormDeliveryRecordRepository) get(db *gorm.DB, id kernel.UUID) (*delivery.Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryRecordDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery record", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the record created when the order was dispatched.
func (r *GormDeliveryRecordRepository) GetByOrderID(ctx context.Context, orderID string) (*delivery.Record, error) {
	var dto DeliveryRecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery record for order", orderID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// List retrieves all records, newest first.
func (r *GormDeliveryRecordRepository) List(ctx context.Context) ([]*delivery.Record, error) {
	var dtos []DeliveryRecordDTO
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*delivery.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
