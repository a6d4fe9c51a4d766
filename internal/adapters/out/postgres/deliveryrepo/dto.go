// Package deliveryrepo persists delivery records in the delivery_records table.
package deliveryrepo

import (
	"errors"
	"time"

	"containerops/internal/adapters/out/postgres/dbtypes"
	"containerops/internal/core/domain/model/delivery"
	"containerops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryRecordDTO is one row of the delivery_records table. The unique order_id
// index keeps one record per dispatched order.
type DeliveryRecordDTO struct {
	ID             uuid.UUID            `gorm:"type:uuid;primaryKey"`
	OrderID        string               `gorm:"not null;uniqueIndex"`
	TrackingNumber string               `gorm:"not null;uniqueIndex"`
	Driver         string               `gorm:"not null"`
	Status         string               `gorm:"not null"`
	Customer       dbtypes.ContactDTO   `gorm:"embedded;embeddedPrefix:customer_"`
	Container      dbtypes.ContainerDTO `gorm:"embedded;embeddedPrefix:container_"`
	Destination    dbtypes.AddressDTO   `gorm:"embedded;embeddedPrefix:destination_"`
	ScheduledDate  time.Time            `gorm:"not null"`
	Notes          string
	CreatedAt      time.Time `gorm:"not null;index"`
}

func (DeliveryRecordDTO) TableName() string {
	return "delivery_records"
}

func fromDomain(r *delivery.Record) DeliveryRecordDTO {
	return DeliveryRecordDTO{
		ID:             r.ID().Bytes(),
		OrderID:        r.OrderID(),
		TrackingNumber: r.TrackingNumber(),
		Driver:         r.Driver(),
		Status:         r.Status().String(),
		Customer:       dbtypes.FromContact(r.Customer()),
		Container:      dbtypes.FromContainer(r.Container()),
		Destination:    dbtypes.FromAddress(r.Destination()),
		ScheduledDate:  r.ScheduledDate().UTC(),
		Notes:          r.Notes(),
		CreatedAt:      r.CreatedAt().UTC(),
	}
}

func toDomain(dto DeliveryRecordDTO) (*delivery.Record, error) {
	id, idErr := kernel.UUIDFromBytes(dto.ID[:])
	customer, customerErr := dto.Customer.ToDomain()
	container, containerErr := dto.Container.ToDomain()
	destination, destinationErr := dto.Destination.ToDomain()
	status, statusErr := delivery.ParseStatus(dto.Status)
	if err := errors.Join(idErr, customerErr, containerErr, destinationErr, statusErr); err != nil {
		return nil, err
	}

	source := delivery.Source{
		OrderID:       dto.OrderID,
		Container:     container,
		Customer:      customer,
		Destination:   destination,
		ScheduledDate: dto.ScheduledDate.UTC(),
		Notes:         dto.Notes,
	}
	return delivery.RestoreRecord(id, source, dto.TrackingNumber, dto.Driver, status, dto.CreatedAt.UTC())
}
