package sig

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// flagAttestedCredentialData marks authenticator data that carries an
// attested credential (AAGUID, credential id, COSE public key).
const flagAttestedCredentialData = 1 << 6

type attestationObject struct {
	AuthData []byte          `cbor:"authData"`
	Format   string          `cbor:"fmt"`
	AttStmt  cbor.RawMessage `cbor:"attStmt"`
}

// coseKey is the EC2 subset of a COSE_Key map.
type coseKey struct {
	KeyType int    `cbor:"1,keyasint"`
	Alg     int    `cbor:"3,keyasint,omitempty"`
	Curve   int    `cbor:"-1,keyasint,omitempty"`
	X       []byte `cbor:"-2,keyasint,omitempty"`
	Y       []byte `cbor:"-3,keyasint,omitempty"`
}

// PublicKeyHexFromAttestation extracts the credential public key from a
// registration ceremony's attestation object and returns it as an
// uncompressed hex point (04 || X || Y).
func PublicKeyHexFromAttestation(attObj []byte) (string, error) {
	var att attestationObject
	if err := cbor.Unmarshal(attObj, &att); err != nil {
		return "", fmt.Errorf("decode attestation object: %w", err)
	}

	// rpIdHash (32) || flags (1) || signCount (4)
	ad := att.AuthData
	if len(ad) < 37 {
		return "", fmt.Errorf("authenticator data too short")
	}
	if ad[32]&flagAttestedCredentialData == 0 {
		return "", fmt.Errorf("no attested credential data present")
	}

	// AAGUID (16) || credential id length (2) || credential id || COSE key
	rest := ad[37:]
	if len(rest) < 18 {
		return "", fmt.Errorf("attested credential data too short")
	}
	idLen := int(binary.BigEndian.Uint16(rest[16:18]))
	if len(rest) < 18+idLen {
		return "", fmt.Errorf("truncated credential id")
	}

	var key coseKey
	dec := cbor.NewDecoder(bytes.NewReader(rest[18+idLen:]))
	if err := dec.Decode(&key); err != nil {
		return "", fmt.Errorf("decode COSE key: %w", err)
	}
	if len(key.X) == 0 || len(key.Y) == 0 {
		return "", fmt.Errorf("credential key is not an EC2 key")
	}

	point := make([]byte, 0, 1+len(key.X)+len(key.Y))
	point = append(point, 0x04)
	point = append(point, key.X...)
	point = append(point, key.Y...)
	return hex.EncodeToString(point), nil
}
