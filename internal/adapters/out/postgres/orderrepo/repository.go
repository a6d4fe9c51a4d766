package orderrepo

import (
	"context"
	"errors"

	"containerops/internal/adapters/out/postgres/dbtypes"
	"containerops/internal/core/domain/model/order"
	"containerops/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new order. A taken id, or a tracking number owned by another order,
// fails with ports.ErrDuplicateKey (gorm.ErrDuplicatedKey stays in the chain).
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dbtypes.TranslateWriteError(err, "order", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Upsert inserts the order or overwrites every column of the existing row. A tracking
// number owned by another order fails with ports.ErrDuplicateKey.
func (r *GormOrderRepository) Upsert(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
	if err != nil {
		return dbtypes.TranslateWriteError(err, "order", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order with SELECT ... FOR UPDATE. The row lock is only
// held when the repository is bound to a transaction.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id string) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *GormOrderRepository) get(db *gorm.DB, id string) (*order.Order, error) {
	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// List retrieves all orders, newest first.
func (r *GormOrderRepository) List(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// MarkSeen clears is_new and touches no other column.
func (r *GormOrderRepository) MarkSeen(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id).Update("is_new", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id)
	}
	return nil
}
