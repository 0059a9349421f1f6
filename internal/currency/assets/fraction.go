package assets

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// Fraction is an unsigned rational with a power-of-ten denominator, used
// for the fractional part of creator fees. Arithmetic is exact fixed-point:
// floating point would diverge across replicas.
type Fraction struct {
	_   struct{} `cbor:",toarray"`
	Num uint64
	Den uint64
}

// Zero is the fraction 0/1.
func Zero() Fraction {
	return Fraction{Num: 0, Den: 1}
}

// ParseFraction parses a decimal string such as "0.025" into a fraction
// with the smallest power-of-ten denominator.
func ParseFraction(s string) (Fraction, error) {
	intPart, fracPart, found := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}
	var num, den uint64
	den = 1
	for _, c := range intPart {
		if c < '0' || c > '9' {
			return Fraction{}, fmt.Errorf("invalid fraction %q", s)
		}
		num = num*10 + uint64(c-'0')
	}
	if found {
		if fracPart == "" {
			return Fraction{}, fmt.Errorf("invalid fraction %q", s)
		}
		for _, c := range fracPart {
			if c < '0' || c > '9' {
				return Fraction{}, fmt.Errorf("invalid fraction %q", s)
			}
			num = num*10 + uint64(c-'0')
			den *= 10
		}
	}
	f := Fraction{Num: num, Den: den}
	f.reduce()
	return f, nil
}

func (f *Fraction) reduce() {
	for f.Den > 1 && f.Num%10 == 0 {
		f.Num /= 10
		f.Den /= 10
	}
}

// IsZero reports whether the fraction equals zero.
func (f Fraction) IsZero() bool {
	return f.Num == 0
}

// Valid reports whether the denominator is a supported power of ten.
func (f Fraction) Valid() bool {
	for d := uint64(1); d <= f.Den; d *= 10 {
		if d == f.Den {
			return true
		}
		if d > f.Den/10 {
			break
		}
	}
	return false
}

// MulFloor computes floor(amount * f) without intermediate overflow.
func (f Fraction) MulFloor(amount uint64) uint64 {
	if f.Den == 0 {
		return 0
	}
	p := new(uint256.Int).Mul(uint256.NewInt(amount), uint256.NewInt(f.Num))
	p.Div(p, uint256.NewInt(f.Den))
	return p.Uint64()
}

func (f Fraction) String() string {
	if f.Den <= 1 {
		return fmt.Sprintf("%d", f.Num)
	}
	digits := 0
	for d := f.Den; d > 1; d /= 10 {
		digits++
	}
	return fmt.Sprintf("%d.%0*d", f.Num/f.Den, digits, f.Num%f.Den)
}
