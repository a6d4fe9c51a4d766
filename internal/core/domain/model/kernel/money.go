package kernel

import (
	"errors"
	"fmt"
	"strings"

	"containerops/internal/pkg/errs"
	"containerops/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned by Validate for a zero-value Money.
var ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney constructor")

// Money is an amount in minor units (pence, cents) of a single currency.
type Money struct {
	amount   int64
	currency string

	guard guard.ConstructorGuard
}

// NewMoney rejects negative amounts and non ISO-4217 currency codes. The currency
// is trimmed and upper-cased first.
//
// Example:
//
//	total, err := kernel.NewMoney(125000, "gbp")
//	// total.String() == "1250.00 GBP"
func NewMoney(amount int64, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	var amountErr, currencyErr error
	if amount < 0 {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is negative", amount))
	}
	if err := validate.Var(currency, "required,iso4217"); err != nil {
		currencyErr = errs.NewValueIsInvalidErrorWithCause("currency", err)
	}
	if err := errors.Join(amountErr, currencyErr); err != nil {
		return Money{}, err
	}

	return Money{
		amount:   amount,
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Amount returns the value in minor units, e.g. 125000 for 1250.00 GBP.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the upper-case ISO-4217 code.
func (m Money) Currency() string {
	return m.currency
}

// Validate reports ErrMoneyIsNotConstructed unless the Money came from NewMoney.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// String formats the amount with two decimals and the currency code.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.amount/100, m.amount%100, m.currency)
}
