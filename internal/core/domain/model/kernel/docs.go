// Package kernel provides the value objects shared by the order, delivery and
// notification models.
//
// The package includes:
//   - UUID: identifier for delivery records and notifications
//   - Contact: customer contact details (name, email, phone, optional company)
//   - Address: delivery destination, zero for collection orders
//   - Money: non-negative amount in minor units with an ISO-4217 currency
//
// Value objects are immutable and validate themselves on construction. Those that
// carry a constructor guard reject their zero value in Validate.
package kernel
