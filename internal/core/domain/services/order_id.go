package services

import (
	"strings"

	"github.com/google/uuid"
)

// OrderIDPrefix starts every generated order identifier.
const OrderIDPrefix = "ORD-"

// NewOrderID returns an identifier like ORD-3F9A1C07 for orders submitted without one.
func NewOrderID() string {
	id := uuid.New()
	return OrderIDPrefix + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}
