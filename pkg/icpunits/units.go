package icpunits

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// Decimals is the number of decimal places of the native asset.
	Decimals = 8
	// MaxDecimals is the largest supported decimal count for formatting.
	MaxDecimals = 256
)

var (
	// One represents a single unit of the native asset in base units (e8s).
	One = uint64(math.Pow10(Decimals))
	// OneDecimal represents a single unit of the native asset as decimal.Decimal.
	OneDecimal = decimal.NewFromInt(int64(One))

	ten = big.NewInt(10)
)

func init() {
	decimal.DivisionPrecision = Decimals
}

// Format converts a fixed-point integer amount to a decimal string with the
// given number of decimals, stripping trailing zeros from the fraction and
// dropping the decimal point when the fraction is empty. The conversion
// truncates toward zero, it never rounds.
func Format(amount *big.Int, decimals int) string {
	return format(amount, decimals, false)
}

// FormatPadded is like Format but keeps the fraction zero-padded to exactly
// the requested number of decimals.
func FormatPadded(amount *big.Int, decimals int) string {
	return format(amount, decimals, true)
}

// FormatE8s formats an unsigned base-unit amount of the native asset.
func FormatE8s(amount uint64) string {
	return Format(new(big.Int).SetUint64(amount), Decimals)
}

func format(amount *big.Int, decimals int, pad bool) string {
	mult := multiplier(decimals)

	v := new(big.Int).Set(amount)
	negative := v.Sign() < 0
	if negative {
		v.Neg(v)
	}

	whole, frac := new(big.Int).QuoRem(v, mult, new(big.Int))

	s := whole.String()
	if decimals > 0 {
		fs := frac.String()
		for len(fs) < decimals {
			fs = "0" + fs
		}
		if !pad {
			fs = strings.TrimRight(fs, "0")
		}
		if len(fs) > 0 {
			s = s + "." + fs
		}
	}

	if negative {
		s = "-" + s
	}
	return s
}

// Parse converts a decimal string back to a fixed-point integer amount with
// the given number of decimals. The fraction must not exceed the decimal
// count; excess precision is an error, not a silent truncation.
func Parse(s string, decimals int) (*big.Int, error) {
	mult := multiplier(decimals)

	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	wholePart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		wholePart, fracPart = s[:i], s[i+1:]
	}
	if wholePart == "" && fracPart == "" {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if wholePart == "" {
		wholePart = "0"
	}
	if len(fracPart) > decimals {
		return nil, fmt.Errorf("too many decimal places in %q, max %d", s, decimals)
	}

	whole, ok := new(big.Int).SetString(wholePart, 10)
	if !ok || whole.Sign() < 0 {
		return nil, fmt.Errorf("invalid amount %q", s)
	}

	v := new(big.Int).Mul(whole, mult)
	if fracPart != "" {
		frac, ok := new(big.Int).SetString(fracPart, 10)
		if !ok || frac.Sign() < 0 {
			return nil, fmt.Errorf("invalid amount %q", s)
		}
		scale := new(big.Int).Exp(ten, big.NewInt(int64(decimals-len(fracPart))), nil)
		v.Add(v, frac.Mul(frac, scale))
	}

	if negative {
		v.Neg(v)
	}
	return v, nil
}

// ParseE8s parses a decimal string of the native asset into base units.
func ParseE8s(s string) (uint64, error) {
	v, err := Parse(s, Decimals)
	if err != nil {
		return 0, err
	}
	if v.Sign() < 0 || !v.IsUint64() {
		return 0, fmt.Errorf("amount %q out of range", s)
	}
	return v.Uint64(), nil
}

// FromFloat converts a display amount reported by a wallet extension to base
// units. The multiplication goes through decimal.Decimal so that amounts like
// 0.1 convert exactly instead of picking up binary floating point error.
func FromFloat(amount float64) uint64 {
	return uint64(decimal.NewFromFloat(amount).Mul(OneDecimal).IntPart())
}

// ToFloat converts a base-unit amount to the display representation used by
// wallet extensions. Only for interop at the extension boundary, everything
// internal stays in base units.
func ToFloat(amount uint64) float64 {
	f, _ := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), 0).
		Div(OneDecimal).Float64()
	return f
}

// multiplier returns 10^decimals. Decimal counts outside [0, MaxDecimals] are
// a programming error and panic.
func multiplier(decimals int) *big.Int {
	if decimals < 0 || decimals > MaxDecimals {
		panic(fmt.Sprintf("invalid decimal size: %d", decimals))
	}
	return new(big.Int).Exp(ten, big.NewInt(int64(decimals)), nil)
}
