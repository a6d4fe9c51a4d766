package queries

import (
	"time"

	"containerops/internal/core/domain/model/delivery"
	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/core/domain/model/notification"
	"containerops/internal/core/domain/model/order"
)

// OrderView is one row of the admin orders tab.
type OrderView struct {
	ID                  string
	Type                order.OrderType
	Status              order.Status
	TrackingNumber      string
	IsNew               bool
	CreatedAt           time.Time
	Customer            ContactView
	ContainerType       string
	CatalogID           string
	Quantity            int
	DeliveryOption      order.DeliveryOption
	DeliveryDate        time.Time
	Address             *AddressView
	TotalAmount         int64
	Currency            string
	PaymentMethod       order.PaymentMethod
	SpecialRequirements string
}

// ContactView is the customer contact as shown in every view.
type ContactView struct {
	Name    string
	Email   string
	Phone   string
	Company string
}

// AddressView is a postal address. Views hold it by pointer, nil when absent.
type AddressView struct {
	Line1    string
	Line2    string
	City     string
	Postcode string
}

// DeliveryView is one row of the driver tab.
type DeliveryView struct {
	ID             kernel.UUID
	OrderID        string
	TrackingNumber string
	Driver         string
	Status         delivery.Status
	Customer       ContactView
	Destination    *AddressView
	ContainerType  string
	Quantity       int
	ScheduledDate  time.Time
	Notes          string
	CreatedAt      time.Time
}

// NotificationView is one entry of the notification log.
type NotificationView struct {
	ID             kernel.UUID
	Sequence       int64
	OrderID        string
	Email          string
	Message        string
	Type           notification.Type
	TrackingNumber string
	CreatedAt      time.Time
}

// NewOrderView projects an order onto the admin view. Command results are mapped
// through it too, so every endpoint returns the same shape.
func NewOrderView(o *order.Order) OrderView {
	d := o.Details()
	return OrderView{
		ID:                  o.ID(),
		Type:                d.Type,
		Status:              o.Status(),
		TrackingNumber:      o.TrackingNumber(),
		IsNew:               o.IsNew(),
		CreatedAt:           o.CreatedAt(),
		Customer:            newContactView(d.Customer),
		ContainerType:       d.Container.TypeName(),
		CatalogID:           d.Container.CatalogID(),
		Quantity:            d.Container.Quantity(),
		DeliveryOption:      d.DeliveryOption,
		DeliveryDate:        d.DeliveryDate,
		Address:             newAddressView(d.Address),
		TotalAmount:         d.Total.Amount(),
		Currency:            d.Total.Currency(),
		PaymentMethod:       d.PaymentMethod,
		SpecialRequirements: d.SpecialRequirements,
	}
}

func newContactView(c kernel.Contact) ContactView {
	return ContactView{Name: c.Name(), Email: c.Email(), Phone: c.Phone(), Company: c.Company()}
}

// newAddressView returns nil for the zero address.
func newAddressView(a kernel.Address) *AddressView {
	if a.IsZero() {
		return nil
	}
	return &AddressView{Line1: a.Line1(), Line2: a.Line2(), City: a.City(), Postcode: a.Postcode()}
}

// NewDeliveryView projects a delivery record onto the driver view.
func NewDeliveryView(r *delivery.Record) DeliveryView {
	return DeliveryView{
		ID:             r.ID(),
		OrderID:        r.OrderID(),
		TrackingNumber: r.TrackingNumber(),
		Driver:         r.Driver(),
		Status:         r.Status(),
		Customer:       newContactView(r.Customer()),
		Destination:    newAddressView(r.Destination()),
		ContainerType:  r.Container().TypeName(),
		Quantity:       r.Container().Quantity(),
		ScheduledDate:  r.ScheduledDate(),
		Notes:          r.Notes(),
		CreatedAt:      r.CreatedAt(),
	}
}

// NewNotificationView projects a notification log entry.
func NewNotificationView(n *notification.Notification) NotificationView {
	return NotificationView{
		ID:             n.ID(),
		Sequence:       n.Sequence(),
		OrderID:        n.OrderID(),
		Email:          n.Email(),
		Message:        n.Message(),
		Type:           n.Type(),
		TrackingNumber: n.TrackingNumber(),
		CreatedAt:      n.CreatedAt(),
	}
}
