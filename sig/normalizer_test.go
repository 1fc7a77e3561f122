package sig

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenpay/passgate/core"
)

// derSignature builds a minimal DER SEQUENCE of two INTEGERs.
func derSignature(r, s []byte) []byte {
	body := []byte{0x02, byte(len(r))}
	body = append(body, r...)
	body = append(body, 0x02, byte(len(s)))
	body = append(body, s...)
	out := []byte{0x30, byte(len(body))}
	return append(out, body...)
}

func bytes32(v *big.Int) []byte {
	return v.FillBytes(make([]byte, 32))
}

func TestNormalizeLowSIsUntouched(t *testing.T) {
	r := bytes32(big.NewInt(0x1234))
	s := bytes32(big.NewInt(0x5678))

	sig, err := Normalize(derSignature(r, s))
	require.NoError(t, err)

	assert.Equal(t, r, sig.R[:])
	assert.Equal(t, s, sig.S[:])
	assert.Len(t, sig.Bytes(), 64)
	assert.Len(t, sig.Hex(), 128)
}

func TestNormalizeFlipsHighS(t *testing.T) {
	r := bytes32(big.NewInt(7))
	// order - 5 is well above half the order; its low form is 5.
	high := new(big.Int).Sub(curveOrder, big.NewInt(5))

	sig, err := Normalize(derSignature(r, bytes32(high)))
	require.NoError(t, err)

	assert.Equal(t, r, sig.R[:], "r must be unchanged")
	assert.Equal(t, bytes32(big.NewInt(5)), sig.S[:])

	sv := new(big.Int).SetBytes(sig.S[:])
	assert.LessOrEqual(t, sv.Cmp(halfOrder), 0)
}

func TestNormalizeStripsSignPadding(t *testing.T) {
	// A 33-byte integer with a leading zero is DER sign padding for a
	// value whose top bit is set.
	rv := new(big.Int).Lsh(big.NewInt(1), 255)
	padded := append([]byte{0x00}, bytes32(rv)...)
	s := bytes32(big.NewInt(9))

	sig, err := Normalize(derSignature(padded, s))
	require.NoError(t, err)
	assert.Equal(t, bytes32(rv), sig.R[:])
}

func TestNormalizePadsShortComponents(t *testing.T) {
	sig, err := Normalize(derSignature([]byte{0x01}, []byte{0x02}))
	require.NoError(t, err)
	assert.Equal(t, bytes32(big.NewInt(1)), sig.R[:])
	assert.Equal(t, bytes32(big.NewInt(2)), sig.S[:])
}

func TestNormalizeMalformedInput(t *testing.T) {
	r := bytes32(big.NewInt(1))
	s := bytes32(big.NewInt(2))
	valid := derSignature(r, s)

	tests := []struct {
		name string
		der  []byte
	}{
		{name: "empty", der: nil},
		{name: "wrong sequence tag", der: append([]byte{0x31}, valid[1:]...)},
		{name: "missing integer tag", der: []byte{0x30, 0x02, 0x01, 0x01}},
		{name: "truncated integer", der: valid[:len(valid)-8]},
		{name: "zero length integer", der: []byte{0x30, 0x02, 0x02, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.der)
			require.ErrorIs(t, err, core.ErrMalformedSignature)
		})
	}
}
