package ports

import (
	"context"

	"github.com/duo-labs/webauthn/protocol"
)

// Authenticator is the platform authenticator collaborator. It receives
// ceremony options and returns the signed result; how it signs is
// opaque. Both calls wait on a live user action, so they must honor
// context cancellation and deadlines.
type Authenticator interface {
	Create(ctx context.Context, options *protocol.CredentialCreation) (*protocol.CredentialCreationResponse, error)
	Assert(ctx context.Context, options *protocol.CredentialAssertion) (*protocol.CredentialAssertionResponse, error)
}
