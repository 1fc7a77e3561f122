// Package codec holds the deterministic binary encodings shared between
// this client and the ledger's verification logic: amounts, nonces and
// the signing challenge derived from them.
package codec

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lumenpay/passgate/core"
)

const (
	// MinorUnitDigits is the number of fractional digits the ledger
	// tracks; one whole unit is 10^7 minor units.
	MinorUnitDigits = 7

	// AmountByteLen is the fixed width of an encoded amount.
	AmountByteLen = 16
)

// ParseAmount converts decimal text to an integer count of minor units.
// The text must be a plain decimal number with at most 7 fractional
// digits; a bare leading "." reads as "0.". The result must be positive
// and fit in 128 bits.
func ParseAmount(text string) (*big.Int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty amount", core.ErrInvalidAmount)
	}
	// The grammar is plain decimal; scientific notation is not an amount.
	if strings.ContainsAny(text, "eE") {
		return nil, fmt.Errorf("%w: %q is not a decimal number", core.ErrInvalidAmount, text)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a decimal number", core.ErrInvalidAmount, text)
	}

	// The exponent preserves the textual scale, so "1.12345670" is
	// rejected even though its value needs only seven digits.
	if d.Exponent() < -MinorUnitDigits {
		return nil, fmt.Errorf("%w: more than %d fractional digits", core.ErrInvalidAmount, MinorUnitDigits)
	}

	minor := d.Shift(MinorUnitDigits).BigInt()
	if minor.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", core.ErrInvalidAmount)
	}
	if minor.BitLen() > 128 {
		return nil, core.ErrAmountOverflow
	}
	return minor, nil
}

// EncodeAmount encodes minor units as 16 little-endian bytes, zero
// padded on the high end. The value must fit in 128 bits.
func EncodeAmount(minor *big.Int) ([]byte, error) {
	if minor == nil || minor.Sign() < 0 || minor.BitLen() > 128 {
		return nil, core.ErrAmountOverflow
	}
	buf := minor.FillBytes(make([]byte, AmountByteLen))
	reverse(buf)
	return buf, nil
}

// EncodeAmountText parses decimal text and encodes it in one step.
func EncodeAmountText(text string) ([]byte, error) {
	minor, err := ParseAmount(text)
	if err != nil {
		return nil, err
	}
	return EncodeAmount(minor)
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
