// Package fixedpoint provides the unsigned 32-bit fixed-point arithmetic that
// the computation units share.
//
// A value is a uint32 whose low Fraction bits hold the fractional part, so the
// real value is v / 2^Fraction. Products, sums, and shifts performed directly
// on uint32 wrap at 32 bits. The helpers in this package that combine two
// scaled operands widen to 64 bits first and truncate only the quotient.
package fixedpoint

import (
	"fmt"
	"math"
)

// DefaultFraction is the number of fractional bits used when none is given.
const DefaultFraction = 16

// MaxFraction is the largest supported number of fractional bits.
const MaxFraction = 31

// Format describes a fixed-point layout.
type Format struct {
	Fraction uint
}

// Q16 is the Q16.16 format.
var Q16 = Format{Fraction: DefaultFraction}

// NewFormat returns a format with the given number of fractional bits.
func NewFormat(fraction uint) (Format, error) {
	if fraction == 0 || fraction > MaxFraction {
		return Format{}, fmt.Errorf(
			"fraction must be within [1, %d], got %d", MaxFraction, fraction)
	}

	return Format{Fraction: fraction}, nil
}

// One returns the representation of 1.0.
func (f Format) One() uint32 {
	return 1 << f.Fraction
}

// Widen shifts v left by n bits without losing the bits that leave the low
// 32-bit word.
func Widen(v uint32, n uint) uint64 {
	return uint64(v) << n
}

// Div divides two widened operands and truncates the quotient to 32 bits.
// Division by zero saturates to math.MaxUint32.
func Div(num, den uint64) uint32 {
	if den == 0 {
		return math.MaxUint32
	}

	return uint32(num / den)
}

// Term returns power/factorial in this format, where both operands are plain
// integers. The numerator is scaled by 2^(2f) and the denominator by 2^f, which
// is evaluated as (power << f) / factorial since the common 2^f cancels
// exactly under truncating division.
func (f Format) Term(power, factorial uint32) uint32 {
	return Div(Widen(power, f.Fraction), uint64(factorial))
}

// Ratio returns e / (e + 1.0) where e is a value in this format.
func (f Format) Ratio(e uint32) uint32 {
	return Div(Widen(e, f.Fraction), uint64(e)+uint64(f.One()))
}

// FromFloat converts a real number into this format, rounding to the nearest
// representable value. Negative inputs become 0 and values beyond the range
// saturate.
func (f Format) FromFloat(r float64) uint32 {
	scaled := math.Round(r * float64(f.One()))

	switch {
	case math.IsNaN(scaled) || scaled <= 0:
		return 0
	case scaled >= math.MaxUint32:
		return math.MaxUint32
	}

	return uint32(scaled)
}

// ToFloat converts a value in this format to a real number.
func (f Format) ToFloat(v uint32) float64 {
	return float64(v) / float64(f.One())
}
