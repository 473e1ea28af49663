package application

import (
	"fmt"

	"swapwatch/internal/domain"
)

type Strategy string

const (
	CompareString  Strategy = "string"
	CompareFloat   Strategy = "float"
	CompareDecimal Strategy = "decimal"
)

// Comparator decides whether two observations count as the same price.
type Comparator interface {
	Equal(a, b domain.Price) bool
	// Numeric reports whether the comparator needs parsed values.
	Numeric() bool
	Name() Strategy
}

func NewComparator(s string) (Comparator, error) {
	switch Strategy(s) {
	case "", CompareString:
		return StringComparator{}, nil
	case CompareFloat:
		return FloatComparator{}, nil
	case CompareDecimal:
		return DecimalComparator{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown comparison strategy %q", ErrBadRequest, s)
	}
}

// StringComparator compares the upstream text byte for byte.
type StringComparator struct{}

func (StringComparator) Equal(a, b domain.Price) bool { return a.Raw == b.Raw }
func (StringComparator) Numeric() bool                { return false }
func (StringComparator) Name() Strategy               { return CompareString }

// FloatComparator compares float64 values with exact equality and no epsilon.
type FloatComparator struct{}

func (FloatComparator) Equal(a, b domain.Price) bool {
	if !a.Numeric || !b.Numeric {
		return a.Raw == b.Raw
	}
	return a.Value.InexactFloat64() == b.Value.InexactFloat64()
}
func (FloatComparator) Numeric() bool  { return true }
func (FloatComparator) Name() Strategy { return CompareFloat }

// DecimalComparator compares exact decimal values, so "1.0" equals "1.00".
type DecimalComparator struct{}

func (DecimalComparator) Equal(a, b domain.Price) bool {
	if !a.Numeric || !b.Numeric {
		return a.Raw == b.Raw
	}
	return a.Value.Equal(b.Value)
}
func (DecimalComparator) Numeric() bool  { return true }
func (DecimalComparator) Name() Strategy { return CompareDecimal }
