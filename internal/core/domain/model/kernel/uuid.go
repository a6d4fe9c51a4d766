package kernel

import (
	"fmt"

	"containerops/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not initialized through one of the
// constructor functions. It is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is a value object for a universally unique identifier. It wraps
// github.com/google/uuid and identifies delivery records and notifications.
// Orders keep their own human readable ids (ORD-XXXXXXXX) and never use it.
//
// The zero value of UUID is invalid and must be constructed using one of the provided
// factory functions: NewUUID, UUIDFromString, or UUIDFromBytes.
//
// UUID is immutable and safe for concurrent use.
//
// Example usage:
//
//	// Identify a new delivery record
//	id := kernel.NewUUID()
//
//	// Parse the id the driver dashboard sends back
//	id, err := kernel.UUIDFromString(c.Param("id"))
//	if err != nil {
//	    // 400 Bad Request
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4).
// This is the only way to create identifiers for new delivery records and notifications.
//
// Example:
//
//	recordID := kernel.NewUUID()
//	fmt.Println(recordID.String()) // e.g., "550e8400-e29b-41d4-a716-446655440000"
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses a UUID from its string representation.
// It accepts the formats of uuid.Parse, including:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//
// Returns an error for malformed input and ErrUUIDIsNotConstructed for the nil UUID.
//
// Example:
//
//	id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    return fmt.Errorf("invalid delivery id: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}

	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes builds a UUID from its 16 byte representation, as stored in the
// postgres uuid columns.
// Returns an error when b is not 16 bytes long or holds the nil UUID.
//
// Example:
//
//	id, err := kernel.UUIDFromBytes(dto.ID[:])
//	if err != nil {
//	    return nil, fmt.Errorf("corrupt delivery record id: %w", err)
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}

	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// String returns the canonical form "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx".
// For a zero value UUID it returns "00000000-0000-0000-0000-000000000000".
//
// Used for logging, for the JSON views and as the tracker key of the postgres
// unit of work.
//
// Example:
//
//	logger.Info("driver assigned", zap.Stringer("delivery_id", record.ID()))
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying google UUID value.
// Note: it returns uuid.UUID, not a byte slice. Slice it for the raw bytes.
//
// Example:
//
//	raw := record.ID().Bytes()
//	db.First(&dto, "id = ?", raw)
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both UUIDs hold the same value.
//
// Example:
//
//	id1 := kernel.NewUUID()
//	id2 := id1
//	fmt.Println(id1.IsEqual(id2))             // true
//	fmt.Println(id1.IsEqual(kernel.NewUUID())) // false
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate checks that the UUID was built through a constructor.
// Returns ErrUUIDIsNotConstructed for the zero value (the nil UUID).
//
// Example:
//
//	func (r *Record) setID(id kernel.UUID) error {
//	    if err := id.Validate(); err != nil {
//	        return err
//	    }
//	    r.id = id
//	    return nil
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
