// Package order provides the Order aggregate of the container hire business and
// the table that drives its lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding the booking details, status and tracking number
//   - Status: the lifecycle states pending, confirmed, in-transit, delivered, returned, completed
//   - Edge and Effect: the transition table, each edge listing the side effects it requires
//   - Event: what subscribers are told after an order changes
//
// Key business rules:
//   - A new order is pending and flagged as new (unseen by the admin)
//   - Status only moves forward along the transition table; there is one successor per request
//   - The tracking number is attached when the order goes in-transit and never changes afterwards
//   - Marking an order as seen never touches its status
//
// The aggregate does not run side effects itself. The order state machine in the
// application layer reads the Effects of the resolved Edge, runs them in order and
// then calls ApplyTransition.
package order
