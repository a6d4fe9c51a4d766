// Package orderrepo persists the order aggregate in the orders table.
package orderrepo

import (
	"errors"
	"time"

	"containerops/internal/adapters/out/postgres/dbtypes"
	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/core/domain/model/order"
)

// OrderDTO is one row of the orders table. TrackingNumber is NULL until dispatch so
// the unique index only covers dispatched orders.
type OrderDTO struct {
	ID                  string               `gorm:"primaryKey"`
	Type                string               `gorm:"not null"`
	Status              string               `gorm:"not null;index"`
	TrackingNumber      *string              `gorm:"uniqueIndex"`
	IsNew               bool                 `gorm:"not null"`
	Customer            dbtypes.ContactDTO   `gorm:"embedded;embeddedPrefix:customer_"`
	Container           dbtypes.ContainerDTO `gorm:"embedded;embeddedPrefix:container_"`
	DeliveryOption      string               `gorm:"not null"`
	DeliveryDate        time.Time            `gorm:"not null"`
	Address             dbtypes.AddressDTO   `gorm:"embedded;embeddedPrefix:address_"`
	TotalAmount         int64                `gorm:"not null"`
	TotalCurrency       string               `gorm:"not null"`
	PaymentMethod       string               `gorm:"not null"`
	SpecialRequirements string
	CreatedAt           time.Time `gorm:"not null;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	d := o.Details()

	var trackingNumber *string
	if tn := o.TrackingNumber(); tn != "" {
		trackingNumber = &tn
	}

	return OrderDTO{
		ID:                  o.ID(),
		Type:                string(d.Type),
		Status:              o.Status().String(),
		TrackingNumber:      trackingNumber,
		IsNew:               o.IsNew(),
		Customer:            dbtypes.FromContact(d.Customer),
		Container:           dbtypes.FromContainer(d.Container),
		DeliveryOption:      string(d.DeliveryOption),
		DeliveryDate:        d.DeliveryDate.UTC(),
		Address:             dbtypes.FromAddress(d.Address),
		TotalAmount:         d.Total.Amount(),
		TotalCurrency:       d.Total.Currency(),
		PaymentMethod:       string(d.PaymentMethod),
		SpecialRequirements: d.SpecialRequirements,
		CreatedAt:           o.CreatedAt().UTC(),
	}
}

// toDomain rebuilds the aggregate with RestoreOrder, so a row that breaks an order
// invariant fails to load instead of surfacing half-valid.
func toDomain(dto OrderDTO) (*order.Order, error) {
	customer, customerErr := dto.Customer.ToDomain()
	container, containerErr := dto.Container.ToDomain()
	address, addressErr := dto.Address.ToDomain()
	total, totalErr := kernel.NewMoney(dto.TotalAmount, dto.TotalCurrency)
	status, statusErr := order.ParseStatus(dto.Status)
	if err := errors.Join(customerErr, containerErr, addressErr, totalErr, statusErr); err != nil {
		return nil, err
	}

	var trackingNumber string
	if dto.TrackingNumber != nil {
		trackingNumber = *dto.TrackingNumber
	}

	details := order.Details{
		Type:                order.OrderType(dto.Type),
		Customer:            customer,
		Container:           container,
		DeliveryOption:      order.DeliveryOption(dto.DeliveryOption),
		DeliveryDate:        dto.DeliveryDate.UTC(),
		Address:             address,
		Total:               total,
		PaymentMethod:       order.PaymentMethod(dto.PaymentMethod),
		SpecialRequirements: dto.SpecialRequirements,
	}

	return order.RestoreOrder(dto.ID, details, status, trackingNumber, dto.IsNew, dto.CreatedAt.UTC())
}
