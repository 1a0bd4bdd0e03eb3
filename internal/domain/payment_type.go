package domain

import (
	"math"
	"strings"
)

// PaymentKind identifies how much of an appointment's value the clinic receives.
type PaymentKind string

// Payment kinds. The full kind is written as "100" on the wire.
const (
	PaymentFull       PaymentKind = "100"
	PaymentPercentage PaymentKind = "percentage"
)

// PaymentType validation errors
var (
	ErrInvalidPaymentType = NewValidationError("payment type must be 100 or percentage")
	ErrPercentageRequired = NewValidationError("percentage is required for percentage payment type")
)

// PaymentType is either a full payment or a percentage share of the value.
// The percentage is set if and only if the kind is PaymentPercentage.
type PaymentType struct {
	kind       PaymentKind
	percentage *float64
}

// ParsePaymentKind accepts "100", "full" and "percentage" in any case.
// An empty kind defaults to PaymentFull.
func ParsePaymentKind(s string) (PaymentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "100", "full":
		return PaymentFull, nil
	case "percentage":
		return PaymentPercentage, nil
	default:
		return "", ErrInvalidPaymentType
	}
}

// NewPaymentType validates a kind and optional percentage. For the full kind
// any percentage is discarded.
func NewPaymentType(kind string, percentage *float64) (PaymentType, error) {
	k, err := ParsePaymentKind(kind)
	if err != nil {
		return PaymentType{}, err
	}
	if k == PaymentFull {
		return PaymentType{kind: PaymentFull}, nil
	}
	if percentage == nil {
		return PaymentType{}, ErrPercentageRequired
	}
	p := *percentage
	if math.IsNaN(p) || p < 0 || p > 100 {
		return PaymentType{}, ErrInvalidPercentage
	}
	return PaymentType{kind: PaymentPercentage, percentage: &p}, nil
}

// FullPayment returns the full payment type.
func FullPayment() PaymentType {
	return PaymentType{kind: PaymentFull}
}

// Kind returns the payment kind.
func (pt PaymentType) Kind() PaymentKind { return pt.kind }

// IsFull reports whether the whole value is received.
func (pt PaymentType) IsFull() bool { return pt.kind != PaymentPercentage }

// Percentage returns the share for percentage payments, or nil.
func (pt PaymentType) Percentage() *float64 {
	if pt.percentage == nil {
		return nil
	}
	p := *pt.percentage
	return &p
}

// CalculateReceivedValue returns value for full payments and the percentage
// share of value otherwise.
func (pt PaymentType) CalculateReceivedValue(value Money) (Money, error) {
	if pt.IsFull() {
		return value, nil
	}
	return value.Percentage(*pt.percentage)
}

// Equals compares kind and percentage.
func (pt PaymentType) Equals(other PaymentType) bool {
	if pt.IsFull() || other.IsFull() {
		return pt.IsFull() == other.IsFull()
	}
	return *pt.percentage == *other.percentage
}

// String returns the wire form of the kind.
func (pt PaymentType) String() string {
	if pt.IsFull() {
		return string(PaymentFull)
	}
	return string(PaymentPercentage)
}
