package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// moneyPlaces is the number of fraction digits amounts are stored and rendered with.
const moneyPlaces = 2

// Bounds on the decimal form accepted from outside. Rounding rescales the
// coefficient by the exponent, so "1e2000000000" must be refused before it.
const (
	maxExponent = 8
	minExponent = -20
	maxDigits   = 40
)

var ErrAmountOutOfRange = errors.New("amount out of range")

// Money is a decimal amount. JSON input may be a number or a numeric string;
// JSON output is always a string with two fraction digits ("3.50").
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d rounded to two places.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(moneyPlaces)}
}

// checkedMoney rounds d after making sure its exponent and digit count
// keep the rounding cheap.
func checkedMoney(d decimal.Decimal) (Money, error) {
	exp := d.Exponent()
	if exp > maxExponent || exp < minExponent || d.NumDigits() > maxDigits {
		return Money{}, ErrAmountOutOfRange
	}
	return NewMoney(d), nil
}

// ParseMoney parses s ("3.5", "100.00") into Money.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	m, err := checkedMoney(d)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return m, nil
}

// MustMoney is ParseMoney for literals; it panics on malformed input.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// String renders the amount with two fraction digits.
func (m Money) String() string {
	return m.StringFixed(moneyPlaces)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return fmt.Errorf("amount must not be null")
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	v, err := checkedMoney(d)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Value stores the amount as fixed two-place text, exact in every driver.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *Money) Scan(src any) error {
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return fmt.Errorf("scan amount: %w", err)
	}
	*m = NewMoney(d)
	return nil
}
