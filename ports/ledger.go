package ports

import (
	"context"
	"math/big"

	"github.com/duo-labs/webauthn/protocol"

	"github.com/lumenpay/passgate/core"
)

// LedgerClient is the backend collaborator: it issues ceremony options,
// verifies ceremony results, indexes accounts and nonces, and broadcasts
// signed transfers to the ledger.
type LedgerClient interface {
	RegistrationOptions(ctx context.Context, name string) (*protocol.CredentialCreation, error)
	VerifyRegistration(ctx context.Context, response *protocol.CredentialCreationResponse) (string, error)

	LoginOptions(ctx context.Context) (*protocol.CredentialAssertion, error)
	VerifyLogin(ctx context.Context, response *protocol.CredentialAssertionResponse) (string, error)

	AccountInfo(ctx context.Context, userID string) (*core.AccountInfo, error)
	Balance(ctx context.Context, smartAccountID string) (*big.Int, error)

	// Nonce returns the account's current replay-protection counter.
	// This is the authoritative source; nonces are never invented
	// client-side.
	Nonce(ctx context.Context, smartAccountID string) (uint64, error)

	SubmitTransfer(ctx context.Context, submission *core.TransferSubmission) (*core.TransferReceipt, error)
}
