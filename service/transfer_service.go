package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/duo-labs/webauthn/protocol"
	"github.com/sirupsen/logrus"

	"github.com/lumenpay/passgate/codec"
	"github.com/lumenpay/passgate/core"
	"github.com/lumenpay/passgate/ports"
	"github.com/lumenpay/passgate/sig"
)

// DefaultCeremonyTimeout bounds the wait for the user to complete the
// authenticator ceremony.
const DefaultCeremonyTimeout = 2 * time.Minute

// TransferService authorizes and submits transfers. One invocation runs
// the fixed sequence: intent validation, nonce fetch, challenge build,
// authenticator ceremony, signature normalization, submission. Any
// failure short-circuits the rest; nothing is retried and no partial
// state is persisted.
type TransferService struct {
	sessions        ports.SessionStore
	ledger          ports.LedgerClient
	authenticator   ports.Authenticator
	events          ports.EventPublisher
	log             *logrus.Logger
	ceremonyTimeout time.Duration

	// Transfers are serialized per smart account: two concurrent
	// ceremonies racing for the same nonce would produce one valid and
	// one rejected transfer non-deterministically.
	mu       sync.Mutex
	inflight map[string]*sync.Mutex
}

// NewTransferService creates a new transfer service.
func NewTransferService(
	sessions ports.SessionStore,
	ledger ports.LedgerClient,
	authenticator ports.Authenticator,
	events ports.EventPublisher,
	log *logrus.Logger,
) *TransferService {
	if log == nil {
		log = logrus.New()
	}
	return &TransferService{
		sessions:        sessions,
		ledger:          ledger,
		authenticator:   authenticator,
		events:          events,
		log:             log,
		ceremonyTimeout: DefaultCeremonyTimeout,
		inflight:        make(map[string]*sync.Mutex),
	}
}

// SetCeremonyTimeout overrides the authenticator ceremony timeout.
func (s *TransferService) SetCeremonyTimeout(d time.Duration) {
	if d > 0 {
		s.ceremonyTimeout = d
	}
}

// Send authorizes a transfer of the given decimal amount to recipient
// with the active session's passkey and submits it to the ledger.
func (s *TransferService) Send(ctx context.Context, recipient, amountText string) (*core.TransferReceipt, error) {
	session, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNoSession, err)
	}
	if session == nil || session.Validate() != nil {
		return nil, core.ErrNoSession
	}

	// Local validation happens before any network call so a bad intent
	// never consumes a nonce.
	minor, err := codec.ParseAmount(amountText)
	if err != nil {
		return nil, err
	}
	intent := &core.TransferIntent{Recipient: recipient, Amount: minor}
	if err := intent.Validate(session.SmartAccountID); err != nil {
		return nil, err
	}

	lock := s.accountLock(session.SmartAccountID)
	lock.Lock()
	defer lock.Unlock()

	nonce, err := s.ledger.Nonce(ctx, session.SmartAccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNonceUnavailable, err)
	}

	amountBytes, err := codec.EncodeAmount(minor)
	if err != nil {
		return nil, err
	}
	challenge := codec.TransferChallenge(amountBytes, nonce)

	log := s.log.WithFields(logrus.Fields{
		"account":   session.SmartAccountID,
		"recipient": intent.Recipient,
		"nonce":     nonce,
	})
	log.Debug("awaiting assertion")

	assertion, err := s.awaitAssertion(ctx, session, challenge)
	if err != nil {
		return nil, err
	}

	normalized, err := sig.Normalize(assertion.AssertionResponse.Signature)
	if err != nil {
		return nil, err
	}

	receipt, err := s.ledger.SubmitTransfer(ctx, &core.TransferSubmission{
		Sender:            session.SmartAccountID,
		Recipient:         intent.Recipient,
		Amount:            minor,
		SignatureHex:      normalized.Hex(),
		AuthenticatorData: assertion.AssertionResponse.AuthenticatorData,
		ClientDataJSON:    assertion.AssertionResponse.ClientDataJSON,
		CredentialID:      assertion.ID,
	})
	if err != nil {
		return nil, err
	}

	log.WithField("tx", receipt.TransactionHash).Info("transfer submitted")

	if s.events != nil {
		if err := s.events.PublishTransferSubmitted(ctx, session.SmartAccountID, intent.Recipient, minor, receipt.TransactionHash); err != nil {
			s.log.WithError(err).Warn("failed to publish transfer event")
		}
	}

	return receipt, nil
}

// awaitAssertion runs the authenticator ceremony with the computed
// digest as its challenge, bounded by the ceremony timeout.
func (s *TransferService) awaitAssertion(ctx context.Context, session *core.Session, challenge core.Challenge) (*protocol.CredentialAssertionResponse, error) {
	options, err := s.ledger.LoginOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch ceremony options: %v", core.ErrNetworkFailure, err)
	}
	options.Response.Challenge = challenge.Digest

	// Pin the ceremony to the session's credential when the backend
	// left the allow-list open.
	if len(options.Response.AllowedCredentials) == 0 && session.CredentialID != "" {
		if id, decodeErr := base64.RawURLEncoding.DecodeString(session.CredentialID); decodeErr == nil {
			options.Response.AllowedCredentials = []protocol.CredentialDescriptor{{
				Type:         "public-key",
				CredentialID: id,
			}}
		}
	}

	ceremonyCtx, cancel := context.WithTimeout(ctx, s.ceremonyTimeout)
	defer cancel()

	assertion, err := s.authenticator.Assert(ceremonyCtx, options)
	if err == nil {
		return assertion, nil
	}

	switch {
	case errors.Is(err, core.ErrAssertionDenied):
		return nil, err
	case ceremonyCtx.Err() == context.DeadlineExceeded || errors.Is(err, context.DeadlineExceeded):
		// Either deadline counts, the ceremony's own timeout or one the
		// caller brought along.
		return nil, fmt.Errorf("%w: no assertion before deadline", core.ErrAssertionTimeout)
	case errors.Is(err, context.Canceled):
		// The caller abandoned the ceremony; a dismissed prompt is not
		// a transient failure and must not be retried.
		return nil, fmt.Errorf("%w: ceremony abandoned", core.ErrAssertionDenied)
	default:
		return nil, fmt.Errorf("%w: %v", core.ErrNetworkFailure, err)
	}
}

func (s *TransferService) accountLock(smartAccountID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.inflight[smartAccountID]
	if !ok {
		lock = &sync.Mutex{}
		s.inflight[smartAccountID] = lock
	}
	return lock
}
