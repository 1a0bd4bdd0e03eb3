package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code supported by the clinic billing rules.
type Currency string

// Supported currencies
const (
	CurrencyBRL Currency = "BRL"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// DefaultCurrency is used when an input record omits the currency.
const DefaultCurrency = CurrencyBRL

// Money validation and rule errors
var (
	ErrNegativeAmount     = NewValidationError("amount cannot be negative")
	ErrInvalidAmount      = NewValidationError("amount must be a finite number")
	ErrInvalidCurrency    = NewValidationError("currency must be one of BRL, USD, EUR")
	ErrInvalidPercentage  = NewValidationError("percentage must be between 0 and 100")
	ErrCurrencyMismatch   = NewDomainRuleError("cannot operate on amounts with different currencies")
	ErrNegativeMultiplier = NewDomainRuleError("multiplier cannot be negative")
)

var hundred = decimal.NewFromInt(100)

// IsValid checks if the currency is one of the supported codes.
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyBRL, CurrencyUSD, CurrencyEUR:
		return true
	default:
		return false
	}
}

// ParseCurrency normalizes a currency code. An empty code yields DefaultCurrency.
func ParseCurrency(s string) (Currency, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DefaultCurrency, nil
	}
	c := Currency(s)
	if !c.IsValid() {
		return "", ErrInvalidCurrency
	}
	return c, nil
}

// Money is a non-negative amount with two fraction digits in a single currency.
// The zero value is not valid; use NewMoney.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a Money value, rounding amount half-up to 2 decimal places.
// NaN and infinite amounts are rejected with ErrInvalidAmount.
func NewMoney(amount float64, currency Currency) (Money, error) {
	if !isFinite(amount) {
		return Money{}, ErrInvalidAmount
	}
	return NewMoneyFromDecimal(decimal.NewFromFloat(amount), currency)
}

// NewMoneyFromDecimal creates a Money value from an exact decimal amount.
// The sign is checked before rounding, so -0.001 is negative, not zero.
func NewMoneyFromDecimal(amount decimal.Decimal, currency Currency) (Money, error) {
	if !currency.IsValid() {
		return Money{}, ErrInvalidCurrency
	}
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: amount.Round(2), currency: currency}, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency Currency) (Money, error) {
	return NewMoneyFromDecimal(decimal.Zero, currency)
}

// Amount returns the exact decimal amount.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Float64 returns the amount as a float, as used on the wire.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// Currency returns the currency code.
func (m Money) Currency() Currency { return m.currency }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.amount.IsZero() }

// Add returns m + other. Both values must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return NewMoneyFromDecimal(m.amount.Add(other.amount), m.currency)
}

// Subtract returns m - other. Both values must share a currency and the
// result must not be negative.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return NewMoneyFromDecimal(m.amount.Sub(other.amount), m.currency)
}

// Multiply scales the amount by a non-negative factor.
func (m Money) Multiply(factor float64) (Money, error) {
	if !isFinite(factor) {
		return Money{}, ErrInvalidAmount
	}
	if factor < 0 {
		return Money{}, ErrNegativeMultiplier
	}
	return NewMoneyFromDecimal(m.amount.Mul(decimal.NewFromFloat(factor)), m.currency)
}

// Percentage returns p percent of the amount, rounded to 2 decimal places
// with the same rule as construction.
func (m Money) Percentage(p float64) (Money, error) {
	if math.IsNaN(p) || p < 0 || p > 100 {
		return Money{}, ErrInvalidPercentage
	}
	share := m.amount.Mul(decimal.NewFromFloat(p)).Div(hundred)
	return NewMoneyFromDecimal(share, m.currency)
}

// Equals compares amount and currency.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// GreaterThan reports whether m > other. Both values must share a currency.
func (m Money) GreaterThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, ErrCurrencyMismatch
	}
	return m.amount.GreaterThan(other.amount), nil
}

// LessThan reports whether m < other. Both values must share a currency.
func (m Money) LessThan(other Money) (bool, error) {
	if m.currency != other.currency {
		return false, ErrCurrencyMismatch
	}
	return m.amount.LessThan(other.amount), nil
}

// String returns the canonical "1234.56 BRL" form.
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + string(m.currency)
}

// Format renders the amount for display in the currency's usual locale:
// "R$ 1.234,56", "$1,234.56" or "€1.234,56". It never feeds back into the
// stored amount.
func (m Money) Format() string {
	fixed := m.amount.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	switch m.currency {
	case CurrencyUSD:
		return "$" + groupThousands(intPart, ",") + "." + fracPart
	case CurrencyEUR:
		return "€" + groupThousands(intPart, ".") + "," + fracPart
	default:
		return "R$ " + groupThousands(intPart, ".") + "," + fracPart
	}
}

func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
