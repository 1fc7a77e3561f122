package core

import (
	"encoding/hex"
	"math/big"
)

// Session represents the single authenticated identity bound to one
// on-chain smart account. A session is either absent (logged out) or
// fully populated; partial sessions are never persisted.
type Session struct {
	UserID         string `json:"userId"`
	SmartAccountID string `json:"smartAccountId"`
	PasskeyPubkey  string `json:"passkeyPubkey"`
	PublicKeyHex   string `json:"publicKeyHex"`
	Name           string `json:"name"`
	CreatedAt      string `json:"createdAt"`
	CredentialID   string `json:"credentialId"`
}

// Validate reports whether the session is complete enough to persist.
func (s *Session) Validate() error {
	if s == nil || s.UserID == "" || s.SmartAccountID == "" {
		return ErrInvalidSession
	}
	return nil
}

// EffectivePublicKeyHex returns the hex-encoded public key, falling back
// to the backend-reported passkey pubkey when no hex form is known.
func (s *Session) EffectivePublicKeyHex() string {
	if s.PublicKeyHex != "" {
		return s.PublicKeyHex
	}
	return s.PasskeyPubkey
}

// AccountInfo is the smart-account record reported by the backend for a
// registered user.
type AccountInfo struct {
	SmartAccountID string `json:"smartAccountId"`
	PasskeyPubkey  string `json:"passkeyPubkey"`
	PublicKeyHex   string `json:"publicKeyHex"`
	Name           string `json:"name"`
	CreatedAt      string `json:"createdAt"`
}

// TransferIntent is one requested transfer before authorization. Amount
// is in minor units (10^7 per whole unit) and must be positive.
type TransferIntent struct {
	Recipient string
	Amount    *big.Int
}

// Challenge is the deterministic signing challenge derived from an
// operation tag, an encoded amount and an encoded nonce.
type Challenge struct {
	// Payload is tag || amount || nonce, fixed total length.
	Payload []byte
	// Digest is the SHA-256 hash of Payload.
	Digest []byte
	// Wire is the unpadded base64url form of Digest handed to the
	// authenticator ceremony.
	Wire string
}

// NormalizedSignature is a fixed 64-byte ECDSA signature with the s
// component canonicalized to its low form.
type NormalizedSignature struct {
	R [32]byte
	S [32]byte
}

// Bytes returns the 64-byte r || s concatenation.
func (n NormalizedSignature) Bytes() []byte {
	out := make([]byte, 0, 64)
	out = append(out, n.R[:]...)
	return append(out, n.S[:]...)
}

// Hex returns the hex encoding of Bytes.
func (n NormalizedSignature) Hex() string {
	return hex.EncodeToString(n.Bytes())
}

// TransferSubmission is what gets handed to the backend after a
// successful ceremony.
type TransferSubmission struct {
	Sender            string
	Recipient         string
	Amount            *big.Int
	SignatureHex      string
	AuthenticatorData []byte
	ClientDataJSON    []byte
	CredentialID      string
}

// TransferReceipt reports a submitted transfer.
type TransferReceipt struct {
	TransactionHash string `json:"transactionHash"`
}
