package ports

import "errors"

// ErrDuplicateKey is returned by a repository when a write would break a uniqueness
// rule of the store: an order id, a tracking number or a delivery record per order.
// Adapters wrap it around their driver error, so both stay matchable with errors.Is.
var ErrDuplicateKey = errors.New("duplicate key")
