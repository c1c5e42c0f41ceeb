package convert

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidAmount marks a decimal amount that cannot be encoded for a
// write: malformed, non-positive, or non-finite.
var ErrInvalidAmount = errors.New("invalid amount")

// DefaultEthUsdRate is a fixed display-only approximation of the native
// token's fiat price. It is deliberately not a live oracle feed.
const DefaultEthUsdRate int64 = 1800

var (
	hundred = big.NewInt(100)
	weiPerEth = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

// FormatMinorUnits renders an integer minor-unit amount (cents) as a
// two-decimal string, e.g. 500000 -> "5000.00".
func FormatMinorUnits(minor *big.Int) string {
	if minor == nil {
		minor = new(big.Int)
	}
	q, r := new(big.Int).QuoRem(minor, hundred, new(big.Int))
	r.Abs(r)
	return fmt.Sprintf("%s.%02d", q.String(), r.Uint64())
}

// Dollars renders a minor-unit amount with a currency prefix,
// e.g. 500000 -> "$5000.00".
func Dollars(minor *big.Int) string {
	return "$" + FormatMinorUnits(minor)
}

// MinorUnitsFromDecimal parses a non-negative decimal dollar amount and
// floors it to minor units. Flooring, never rounding: the encoded amount
// must not exceed what the user entered. The integer domain round-trips
// exactly: MinorUnitsFromDecimal(FormatMinorUnits(m)) == m for all m >= 0.
func MinorUnitsFromDecimal(amount string) (*big.Int, error) {
	rat, err := parseDecimal(amount)
	if err != nil {
		return nil, err
	}
	return floorScaled(rat, hundred), nil
}

// WeiFromDecimal parses a non-negative decimal native-token amount and
// floors it to base units (18 decimals).
func WeiFromDecimal(amount string) (*big.Int, error) {
	rat, err := parseDecimal(amount)
	if err != nil {
		return nil, err
	}
	return floorScaled(rat, weiPerEth), nil
}

// FiatFromWei converts a base-unit balance to a fiat display string at a
// fixed rate, e.g. 277500000000000000 wei at rate 1800 -> "$499.50".
// Exact integer arithmetic, floored to the cent.
func FiatFromWei(wei *big.Int, rate int64) string {
	if wei == nil {
		wei = new(big.Int)
	}
	cents := new(big.Int).Mul(wei, big.NewInt(rate))
	cents.Mul(cents, hundred)
	cents.Quo(cents, weiPerEth)
	return Dollars(cents)
}

func parseDecimal(amount string) (*big.Rat, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" || strings.ContainsAny(amount, "eE/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	rat, ok := new(big.Rat).SetString(amount)
	if !ok || rat.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	return rat, nil
}

// floorScaled returns floor(rat * scale) as an integer.
func floorScaled(rat *big.Rat, scale *big.Int) *big.Int {
	scaled := new(big.Rat).Mul(rat, new(big.Rat).SetInt(scale))
	return new(big.Int).Quo(scaled.Num(), scaled.Denom())
}
