package codec

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenpay/passgate/core"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int64
		wantErr error
	}{
		{name: "whole units", text: "1", want: 10_000_000},
		{name: "fractional", text: "1.25", want: 12_500_000},
		{name: "bare leading dot", text: ".5", want: 5_000_000},
		{name: "seven fractional digits", text: "0.0000001", want: 1},
		{name: "two and a half", text: "2.50", want: 25_000_000},
		{name: "zero", text: "0", wantErr: core.ErrInvalidAmount},
		{name: "zero with fraction", text: "0.0", wantErr: core.ErrInvalidAmount},
		{name: "negative", text: "-1", wantErr: core.ErrInvalidAmount},
		{name: "seven fractional digits with trailing zeros", text: "1.2500000", want: 12_500_000},
		{name: "eight fractional digits", text: "1.12345678", wantErr: core.ErrInvalidAmount},
		{name: "eight fractional digits ending in zero", text: "1.12345670", wantErr: core.ErrInvalidAmount},
		{name: "empty", text: "", wantErr: core.ErrInvalidAmount},
		{name: "not a number", text: "ten", wantErr: core.ErrInvalidAmount},
		{name: "scientific notation", text: "1e3", wantErr: core.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minor, err := ParseAmount(tt.text)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, minor.Int64())
		})
	}
}

func TestParseAmountOverflow(t *testing.T) {
	// 2^128 minor units cannot be represented in 16 bytes.
	huge := new(big.Int).Lsh(big.NewInt(1), 128)
	_, err := ParseAmount(huge.String())
	require.ErrorIs(t, err, core.ErrAmountOverflow)
}

func TestEncodeAmountLittleEndian(t *testing.T) {
	buf, err := EncodeAmountText("1.25")
	require.NoError(t, err)
	require.Len(t, buf, AmountByteLen)

	// 12,500,000 = 0xBEBC20, little-endian in the low bytes.
	assert.Equal(t, []byte{0x20, 0xbc, 0xbe}, buf[:3])
	for _, b := range buf[3:] {
		assert.Zero(t, b)
	}

	// Round-trip through a big-endian big.Int reproduces the value.
	be := make([]byte, AmountByteLen)
	for i := range buf {
		be[AmountByteLen-1-i] = buf[i]
	}
	assert.Equal(t, int64(12_500_000), new(big.Int).SetBytes(be).Int64())
}

func TestEncodeAmountRejectsWideValues(t *testing.T) {
	_, err := EncodeAmount(new(big.Int).Lsh(big.NewInt(1), 128))
	require.ErrorIs(t, err, core.ErrAmountOverflow)
}
