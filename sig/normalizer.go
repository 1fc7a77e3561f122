// Package sig converts the authenticator's signature material into the
// forms the ledger's verifier accepts.
package sig

import (
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/lumenpay/passgate/core"
)

const componentLen = 32

var (
	curveOrder = elliptic.P256().Params().N
	halfOrder  = new(big.Int).Rsh(elliptic.P256().Params().N, 1)
)

// Normalize parses a DER-encoded ECDSA signature (SEQUENCE of two
// INTEGERs) into the fixed 64-byte r || s form. The s component is
// canonicalized: the same message admits two valid (r, s) encodings and
// the ledger's verifier only accepts the low-s one, so s > N/2 is
// replaced with N - s.
func Normalize(der []byte) (core.NormalizedSignature, error) {
	var sig core.NormalizedSignature

	if len(der) < 2 || der[0] != 0x30 {
		return sig, fmt.Errorf("%w: missing sequence tag", core.ErrMalformedSignature)
	}

	r, rest, err := readInteger(der[2:])
	if err != nil {
		return sig, err
	}
	s, _, err := readInteger(rest)
	if err != nil {
		return sig, err
	}

	sig.R = fitComponent(r)
	sig.S = fitComponent(s)

	sv := new(big.Int).SetBytes(sig.S[:])
	if sv.Cmp(halfOrder) > 0 {
		sv.Sub(curveOrder, sv)
		sv.FillBytes(sig.S[:])
	}

	return sig, nil
}

// readInteger consumes one tag-length-value INTEGER with a single-byte
// length field and returns its value bytes and the remaining input.
func readInteger(b []byte) (value, rest []byte, err error) {
	if len(b) < 2 || b[0] != 0x02 {
		return nil, nil, fmt.Errorf("%w: missing integer tag", core.ErrMalformedSignature)
	}
	n := int(b[1])
	if n == 0 || len(b) < 2+n {
		return nil, nil, fmt.Errorf("%w: truncated integer", core.ErrMalformedSignature)
	}
	return b[2 : 2+n], b[2+n:], nil
}

// fitComponent fits a big-endian integer into exactly 32 bytes: the DER
// sign-padding zero is stripped, short values are left-padded, and
// anything still longer keeps its low-order 32 bytes.
func fitComponent(v []byte) [componentLen]byte {
	if len(v) > componentLen && v[0] == 0x00 {
		v = v[1:]
	}
	if len(v) > componentLen {
		v = v[len(v)-componentLen:]
	}
	var out [componentLen]byte
	copy(out[componentLen-len(v):], v)
	return out
}
