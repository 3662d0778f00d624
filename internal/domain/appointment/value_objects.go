package appointment

import (
	"errors"
	"fmt"
)

type Money struct {
	cents    int64
	currency string
}

func NewMoney(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	if currency == "" {
		return Money{}, errors.New("currency is required")
	}
	return Money{cents: cents, currency: currency}, nil
}

func (m Money) Cents() int64     { return m.cents }
func (m Money) Currency() string { return m.currency }
func (m Money) IsZero() bool     { return m.cents == 0 }

// Fraction returns the given fraction of the amount, rounded down to a cent.
func (m Money) Fraction(f float64) Money {
	return Money{cents: int64(float64(m.cents) * f), currency: m.currency}
}

// Value renders the amount the way the payment API expects it, e.g. "75.00".
func (m Money) Value() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

type Contact struct {
	phone string
	email string
}

func NewContact(phone, email string) (Contact, error) {
	if phone == "" {
		return Contact{}, errors.New("contact phone is required")
	}
	if email == "" {
		return Contact{}, errors.New("contact email is required")
	}
	return Contact{phone: phone, email: email}, nil
}

func (c Contact) Phone() string { return c.phone }
func (c Contact) Email() string { return c.email }
