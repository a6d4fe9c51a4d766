package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/pkg/errs"
	"containerops/internal/pkg/guard"
)

// ErrContainerIsNotConstructed is returned by Validate for a zero-value Container.
var ErrContainerIsNotConstructed = errors.New("Container must be created via NewContainer constructor")

// OrderType distinguishes hire from sale.
type OrderType string

const (
	TypeRental   OrderType = "rental"
	TypePurchase OrderType = "purchase"
)

// Validate accepts TypeRental and TypePurchase.
func (t OrderType) Validate() error {
	switch t {
	case TypeRental, TypePurchase:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("order type", fmt.Errorf("%q is not rental or purchase", string(t)))
}

// DeliveryOption says whether the business delivers the container or the customer collects it.
type DeliveryOption string

const (
	OptionDelivery   DeliveryOption = "delivery"
	OptionCollection DeliveryOption = "collection"
)

// Validate accepts OptionDelivery and OptionCollection.
func (d DeliveryOption) Validate() error {
	switch d {
	case OptionDelivery, OptionCollection:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("delivery option", fmt.Errorf("%q is not delivery or collection", string(d)))
}

// PaymentMethod is how the customer settles the order. It has no effect on the
// lifecycle.
type PaymentMethod string

const (
	PaymentCredit  PaymentMethod = "credit"
	PaymentInvoice PaymentMethod = "invoice"
	PaymentQuote   PaymentMethod = "quote"
)

// Validate accepts the declared payment methods only.
func (p PaymentMethod) Validate() error {
	switch p {
	case PaymentCredit, PaymentInvoice, PaymentQuote:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not credit, invoice or quote", string(p)))
}

// Container describes what was ordered: a catalogue entry and how many of it.
type Container struct {
	typeName  string
	catalogID string
	quantity  int

	guard guard.ConstructorGuard
}

// NewContainer requires a type name, a catalogue id and a quantity of at least one.
//
// Returns:
//   - Container: with trimmed names
//   - error: errs.ValueIsRequiredError or errs.ValueIsInvalidError per problem, joined
func NewContainer(typeName, catalogID string, quantity int) (Container, error) {
	c := Container{
		typeName:  strings.TrimSpace(typeName),
		catalogID: strings.TrimSpace(catalogID),
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}

	var typeErr, catalogErr, quantityErr error
	if c.typeName == "" {
		typeErr = errs.NewValueIsRequiredError("container type")
	}
	if c.catalogID == "" {
		catalogErr = errs.NewValueIsRequiredError("container catalog id")
	}
	if quantity < 1 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("container quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	if err := errors.Join(typeErr, catalogErr, quantityErr); err != nil {
		return Container{}, err
	}
	return c, nil
}

// TypeName returns the catalogue name, e.g. "20ft Standard".
func (c Container) TypeName() string {
	return c.typeName
}

// CatalogID returns the catalogue entry id.
func (c Container) CatalogID() string {
	return c.catalogID
}

// Quantity returns how many containers were ordered, at least one.
func (c Container) Quantity() int {
	return c.quantity
}

// Validate reports ErrContainerIsNotConstructed unless the Container came from NewContainer.
func (c Container) Validate() error {
	return c.guard.Validate(ErrContainerIsNotConstructed)
}

// Details is everything the booking intake captures about an order. None of it
// changes after creation.
type Details struct {
	Type                OrderType
	Customer            kernel.Contact
	Container           Container
	DeliveryOption      DeliveryOption
	DeliveryDate        time.Time
	Address             kernel.Address
	Total               kernel.Money
	PaymentMethod       PaymentMethod
	SpecialRequirements string
}

// Validate checks every field and joins the failures.
//
// Business rules:
//   - the address is required for delivery orders and optional for collection
//   - the delivery date must be set
func (d Details) Validate() error {
	var addressErr, dateErr error
	if d.DeliveryOption == OptionDelivery && d.Address.IsZero() {
		addressErr = errs.NewValueIsRequiredError("delivery address")
	}
	if d.DeliveryDate.IsZero() {
		dateErr = errs.NewValueIsRequiredError("delivery date")
	}

	return errors.Join(
		d.Type.Validate(),
		d.Customer.Validate(),
		d.Container.Validate(),
		d.DeliveryOption.Validate(),
		addressErr,
		dateErr,
		d.Total.Validate(),
		d.PaymentMethod.Validate(),
	)
}
