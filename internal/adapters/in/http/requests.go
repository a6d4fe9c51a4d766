package http

import (
	"errors"
	"strings"
	"time"

	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/core/domain/model/order"
)

const dateLayout = "2006-01-02"

// CreateOrderRequest is the booking intake form.
type CreateOrderRequest struct {
	ID                  string           `json:"id" validate:"omitempty,max=64"`
	Type                string           `json:"type" validate:"required,oneof=rental purchase"`
	Customer            CustomerRequest  `json:"customer"`
	Container           ContainerRequest `json:"container"`
	DeliveryOption      string           `json:"delivery_option" validate:"required,oneof=delivery collection"`
	DeliveryDate        string           `json:"delivery_date" validate:"required,datetime=2006-01-02"`
	Address             *AddressRequest  `json:"address,omitempty" validate:"omitempty"`
	Total               MoneyRequest     `json:"total"`
	PaymentMethod       string           `json:"payment_method" validate:"required,oneof=credit invoice quote"`
	SpecialRequirements string           `json:"special_requirements" validate:"max=2000"`
}

type CustomerRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,max=40"`
	Company string `json:"company" validate:"max=200"`
}

type ContainerRequest struct {
	TypeName  string `json:"type_name" validate:"required"`
	CatalogID string `json:"catalog_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1,max=100"`
}

type AddressRequest struct {
	Line1    string `json:"line1" validate:"required"`
	Line2    string `json:"line2"`
	City     string `json:"city" validate:"required"`
	Postcode string `json:"postcode" validate:"required"`
}

type MoneyRequest struct {
	Amount   int64  `json:"amount" validate:"gte=0"`
	Currency string `json:"currency" validate:"required,iso4217"`
}

// toDetails maps the form onto order details. Domain rules the tags cannot express,
// such as the address being required for delivery, are left to Details.Validate.
func (r CreateOrderRequest) toDetails() (order.Details, error) {
	customer, customerErr := kernel.NewContact(r.Customer.Name, r.Customer.Email, r.Customer.Phone, r.Customer.Company)
	container, containerErr := order.NewContainer(r.Container.TypeName, r.Container.CatalogID, r.Container.Quantity)
	total, totalErr := kernel.NewMoney(r.Total.Amount, strings.ToUpper(r.Total.Currency))
	deliveryDate, dateErr := time.ParseInLocation(dateLayout, r.DeliveryDate, time.UTC)

	var (
		address    kernel.Address
		addressErr error
	)
	if r.Address != nil {
		address, addressErr = kernel.NewAddress(r.Address.Line1, r.Address.Line2, r.Address.City, r.Address.Postcode)
	}

	if err := errors.Join(customerErr, containerErr, totalErr, dateErr, addressErr); err != nil {
		return order.Details{}, err
	}

	return order.Details{
		Type:                order.OrderType(r.Type),
		Customer:            customer,
		Container:           container,
		DeliveryOption:      order.DeliveryOption(r.DeliveryOption),
		DeliveryDate:        deliveryDate,
		Address:             address,
		Total:               total,
		PaymentMethod:       order.PaymentMethod(r.PaymentMethod),
		SpecialRequirements: strings.TrimSpace(r.SpecialRequirements),
	}, nil
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
}

type AssignDriverRequest struct {
	Driver string `json:"driver" validate:"required,max=200"`
}

// AdvanceDeliveryRequest carries the delivery status the driver reports, in wire
// form: "in-transit", "delivered" or "completed".
type AdvanceDeliveryRequest struct {
	Status string `json:"status" validate:"required"`
}
