// Package ordertest builds valid orders for tests of the packages that consume them.
package ordertest

import (
	"testing"
	"time"

	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

// CreatedAt is the creation time of orders built by NewPending.
var CreatedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// Details returns booking details for a 20ft rental delivered to Bristol.
func Details(t testing.TB) order.Details {
	t.Helper()

	customer, err := kernel.NewContact("Jane Doe", "jane@example.com", "07700 900123", "Acme Storage")
	require.NoError(t, err)
	container, err := order.NewContainer("20ft Standard", "CNT-20-STD", 1)
	require.NoError(t, err)
	address, err := kernel.NewAddress("1 Dock Road", "Unit 4", "Bristol", "BS1 4RQ")
	require.NoError(t, err)
	total, err := kernel.NewMoney(125000, "GBP")
	require.NoError(t, err)

	return order.Details{
		Type:                order.TypeRental,
		Customer:            customer,
		Container:           container,
		DeliveryOption:      order.OptionDelivery,
		DeliveryDate:        CreatedAt.AddDate(0, 0, 7),
		Address:             address,
		Total:               total,
		PaymentMethod:       order.PaymentInvoice,
		SpecialRequirements: "Gate code 1234",
	}
}

// CollectionDetails returns details of an order the customer collects, without an address.
func CollectionDetails(t testing.TB) order.Details {
	t.Helper()

	d := Details(t)
	d.DeliveryOption = order.OptionCollection
	d.Address = kernel.Address{}
	return d
}

// NewPending builds a pending order with the default details.
func NewPending(t testing.TB, id string) *order.Order {
	t.Helper()

	o, err := order.NewOrder(id, Details(t), CreatedAt)
	require.NoError(t, err)
	return o
}

// NewWithStatus walks a pending order along the transition table up to status,
// attaching trackingNumber on dispatch.
func NewWithStatus(t testing.TB, id string, status order.Status, trackingNumber string) *order.Order {
	t.Helper()

	o := NewPending(t, id)
	path := map[order.Status][]order.Status{
		order.Pending:   nil,
		order.Confirmed: {order.Confirmed},
		order.InTransit: {order.Confirmed, order.InTransit},
		order.Delivered: {order.Confirmed, order.InTransit, order.Delivered},
		order.Returned:  {order.Confirmed, order.InTransit, order.Delivered, order.Returned},
		order.Completed: {order.Confirmed, order.InTransit, order.Delivered, order.Completed},
	}
	steps, ok := path[status]
	require.True(t, ok, "unsupported status %s", status)

	for _, next := range steps {
		edge, err := o.Status().TransitionTo(next)
		require.NoError(t, err)
		tn := ""
		if edge.Has(order.EffectGenerateTrackingNumber) {
			tn = trackingNumber
		}
		require.NoError(t, o.ApplyTransition(edge, tn))
	}
	return o
}
