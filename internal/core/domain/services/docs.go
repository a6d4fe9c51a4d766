// Package services provides the domain services the order state machine runs as
// side effects of a transition. None of them touches storage.
//
// The package includes:
//   - TrackingNumberGenerator: unique, human-shareable shipment identifiers
//   - DeliveryRecordFactory: builds the driver-facing record of a dispatched order
//   - NotificationEmitter: builds the customer message for a transition
//   - NewOrderID: identifiers for orders submitted without one
//
// The state machine calls them in the order the transition table lists the effects:
// generator, then factory, then emitter, so the record and the notification carry the
// tracking number just produced.
package services
