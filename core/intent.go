package core

import (
	"fmt"

	"github.com/stellar/go/strkey"
)

// Validate checks the intent against the sender's smart account before
// any network call is made: the amount must be positive, the recipient
// must be a well-formed account or contract address, and sending to
// yourself is rejected.
func (i *TransferIntent) Validate(senderAccountID string) error {
	if i.Amount == nil || i.Amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidIntent)
	}
	if !validAddress(i.Recipient) {
		return fmt.Errorf("%w: recipient %q is not a valid address", ErrInvalidIntent, i.Recipient)
	}
	if i.Recipient == senderAccountID {
		return fmt.Errorf("%w: recipient equals sender", ErrInvalidIntent)
	}
	return nil
}

func validAddress(address string) bool {
	if strkey.IsValidEd25519PublicKey(address) {
		return true
	}
	_, err := strkey.Decode(strkey.VersionByteContract, address)
	return err == nil
}
