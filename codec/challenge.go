package codec

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/lumenpay/passgate/core"
)

// TransferTag is the operation tag bound into every transfer challenge.
const TransferTag = "transfer"

// BuildChallenge concatenates the UTF-8 bytes of the operation tag with
// the encoded amount and nonce, hashes the buffer with SHA-256 and
// derives the base64url wire form the authenticator ceremony expects.
// The ledger recomputes the same digest to verify what was signed, so
// identical inputs must always produce an identical challenge.
func BuildChallenge(tag string, amountBytes, nonceBytes []byte) core.Challenge {
	payload := make([]byte, 0, len(tag)+len(amountBytes)+len(nonceBytes))
	payload = append(payload, tag...)
	payload = append(payload, amountBytes...)
	payload = append(payload, nonceBytes...)

	digest := sha256.Sum256(payload)

	return core.Challenge{
		Payload: payload,
		Digest:  digest[:],
		Wire:    base64.RawURLEncoding.EncodeToString(digest[:]),
	}
}

// TransferChallenge builds the challenge for a transfer of the given
// minor-unit amount at the given nonce.
func TransferChallenge(amountBytes []byte, nonce uint64) core.Challenge {
	return BuildChallenge(TransferTag, amountBytes, EncodeNonce(nonce))
}
