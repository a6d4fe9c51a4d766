// Package delivery provides the Delivery Record, the driver-facing work item created
// when an order is dispatched.
//
// A record copies what the driver needs from the order (container, customer,
// destination, scheduled date, notes) together with the order's tracking number.
// It starts pending and unassigned. The driver dashboard owns it from then on; the
// order only keeps the tracking number.
package delivery
