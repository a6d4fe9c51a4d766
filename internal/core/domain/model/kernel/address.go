package kernel

import (
	"errors"
	"strings"

	"containerops/internal/pkg/errs"
)

// Address is a delivery destination. The zero Address means "no destination",
// which is what collection orders carry.
type Address struct {
	line1    string
	line2    string
	city     string
	postcode string
}

// NewAddress requires line1, city and postcode; line2 is optional. Every part is
// trimmed and the postcode is upper-cased.
//
// Returns:
//   - Address: the validated address
//   - error: errs.ValueIsRequiredError per missing part, joined
//
// Example:
//
//	addr, err := kernel.NewAddress("1 Dock Road", "Unit 4", "Bristol", "bs1 4rq")
//	// addr.Postcode() == "BS1 4RQ"
func NewAddress(line1, line2, city, postcode string) (Address, error) {
	a := Address{
		line1:    strings.TrimSpace(line1),
		line2:    strings.TrimSpace(line2),
		city:     strings.TrimSpace(city),
		postcode: strings.ToUpper(strings.TrimSpace(postcode)),
	}

	var line1Err, cityErr, postcodeErr error
	if a.line1 == "" {
		line1Err = errs.NewValueIsRequiredError("address line1")
	}
	if a.city == "" {
		cityErr = errs.NewValueIsRequiredError("address city")
	}
	if a.postcode == "" {
		postcodeErr = errs.NewValueIsRequiredError("address postcode")
	}

	if err := errors.Join(line1Err, cityErr, postcodeErr); err != nil {
		return Address{}, err
	}
	return a, nil
}

// Line1 returns the first address line.
func (a Address) Line1() string {
	return a.line1
}

// Line2 returns the optional second line, empty when not given.
func (a Address) Line2() string {
	return a.line2
}

// City returns the town or city.
func (a Address) City() string {
	return a.city
}

// Postcode returns the postcode in upper case.
func (a Address) Postcode() string {
	return a.postcode
}

// IsZero reports whether the address is empty, as on collection orders.
func (a Address) IsZero() bool {
	return a == Address{}
}

// String renders the address on one line, skipping empty parts.
func (a Address) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.line1, a.line2, a.city, a.postcode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
