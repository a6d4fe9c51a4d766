package kernel

import (
	"errors"
	"strings"

	"containerops/internal/pkg/errs"
	"containerops/internal/pkg/guard"

	"github.com/go-playground/validator/v10"
)

// ErrContactIsNotConstructed is returned by Validate for a zero-value Contact.
var ErrContactIsNotConstructed = errors.New("Contact must be created via NewContact constructor")

// validate is shared by the value objects; validator.Validate is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Contact holds the customer details captured by the booking form.
type Contact struct {
	name    string
	email   string
	phone   string
	company string

	guard guard.ConstructorGuard
}

// NewContact validates and builds a Contact. Company is optional.
//
// Returns:
//   - Contact: with every field trimmed
//   - error: errs.ValueIsRequiredError for a missing name, email or phone, and
//     errs.ValueIsInvalidError for a malformed email, joined
func NewContact(name, email, phone, company string) (Contact, error) {
	c := Contact{
		name:    strings.TrimSpace(name),
		email:   strings.TrimSpace(email),
		phone:   strings.TrimSpace(phone),
		company: strings.TrimSpace(company),
		guard:   guard.NewConstructorGuard(),
	}

	var nameErr, emailErr, phoneErr error
	if c.name == "" {
		nameErr = errs.NewValueIsRequiredError("customer name")
	}
	if c.email == "" {
		emailErr = errs.NewValueIsRequiredError("customer email")
	} else if err := validate.Var(c.email, "email"); err != nil {
		emailErr = errs.NewValueIsInvalidErrorWithCause("customer email", err)
	}
	if c.phone == "" {
		phoneErr = errs.NewValueIsRequiredError("customer phone")
	}

	if err := errors.Join(nameErr, emailErr, phoneErr); err != nil {
		return Contact{}, err
	}
	return c, nil
}

// Name returns the customer name.
func (c Contact) Name() string {
	return c.name
}

// Email returns the address notifications are sent to.
func (c Contact) Email() string {
	return c.email
}

// Phone returns the phone number as entered.
func (c Contact) Phone() string {
	return c.phone
}

// Company returns the optional company name.
func (c Contact) Company() string {
	return c.company
}

// Validate reports ErrContactIsNotConstructed unless the Contact came from NewContact.
func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}
