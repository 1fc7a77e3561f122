package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/sirupsen/logrus"

	"github.com/lumenpay/passgate/core"
	"github.com/lumenpay/passgate/ports"
	"github.com/lumenpay/passgate/sig"
)

// AuthService runs the passkey registration and login ceremonies and
// owns the local session lifecycle. Only login, registration and logout
// ever mutate the session store.
type AuthService struct {
	ledger        ports.LedgerClient
	authenticator ports.Authenticator
	sessions      ports.SessionStore
	events        ports.EventPublisher
	log           *logrus.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	ledger ports.LedgerClient,
	authenticator ports.Authenticator,
	sessions ports.SessionStore,
	events ports.EventPublisher,
	log *logrus.Logger,
) *AuthService {
	if log == nil {
		log = logrus.New()
	}
	return &AuthService{
		ledger:        ledger,
		authenticator: authenticator,
		sessions:      sessions,
		events:        events,
		log:           log,
	}
}

// Register runs a full registration ceremony and persists the resulting
// session.
func (s *AuthService) Register(ctx context.Context, name string) (*core.Session, error) {
	options, err := s.ledger.RegistrationOptions(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetch registration options: %w", err)
	}

	response, err := s.authenticator.Create(ctx, options)
	if err != nil {
		if errors.Is(err, core.ErrAssertionDenied) {
			return nil, err
		}
		return nil, fmt.Errorf("registration ceremony: %w", err)
	}

	userID, err := s.ledger.VerifyRegistration(ctx, response)
	if err != nil {
		return nil, fmt.Errorf("verify registration: %w", err)
	}

	session, err := s.buildSession(ctx, userID, response.ID)
	if err != nil {
		return nil, err
	}

	// The backend may not report a hex public key yet; derive it from
	// the attestation object and fall back to the raw passkey pubkey.
	if session.PublicKeyHex == "" {
		if hexKey, err := sig.PublicKeyHexFromAttestation(response.AttestationResponse.AttestationObject); err == nil {
			session.PublicKeyHex = hexKey
		} else {
			s.log.WithError(err).Debug("could not derive public key from attestation")
			session.PublicKeyHex = session.PasskeyPubkey
		}
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user":    session.UserID,
		"account": session.SmartAccountID,
	}).Info("registered new passkey session")

	return session, nil
}

// Login runs a login ceremony and overwrites any previous session.
func (s *AuthService) Login(ctx context.Context) (*core.Session, error) {
	options, err := s.ledger.LoginOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch login options: %w", err)
	}

	response, err := s.authenticator.Assert(ctx, options)
	if err != nil {
		if errors.Is(err, core.ErrAssertionDenied) {
			return nil, err
		}
		return nil, fmt.Errorf("login ceremony: %w", err)
	}

	userID, err := s.ledger.VerifyLogin(ctx, response)
	if err != nil {
		return nil, fmt.Errorf("verify login: %w", err)
	}

	session, err := s.buildSession(ctx, userID, response.ID)
	if err != nil {
		return nil, err
	}
	if session.PublicKeyHex == "" {
		session.PublicKeyHex = session.PasskeyPubkey
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.log.WithField("user", session.UserID).Info("logged in")
	return session, nil
}

// Logout clears the persisted session. Logging out while logged out is
// a no-op.
func (s *AuthService) Logout(ctx context.Context) error {
	session, err := s.sessions.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil
	}

	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishLogout(ctx, session.UserID, session.SmartAccountID); err != nil {
			// The session is already cleared, which is the part that
			// matters; the event is advisory.
			s.log.WithError(err).Warn("failed to publish logout event")
		}
	}

	return nil
}

// Session returns the active session or ErrNoSession.
func (s *AuthService) Session(ctx context.Context) (*core.Session, error) {
	session, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil || session.Validate() != nil {
		return nil, core.ErrNoSession
	}
	return session, nil
}

// IsAuthenticated reports whether a complete session is persisted.
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	active, err := s.sessions.IsActive(ctx)
	return err == nil && active
}

// Balance returns the active session's balance in minor units.
func (s *AuthService) Balance(ctx context.Context) (*big.Int, error) {
	session, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}
	balance, err := s.ledger.Balance(ctx, session.SmartAccountID)
	if err != nil {
		return nil, fmt.Errorf("fetch balance: %w", err)
	}
	return balance, nil
}

func (s *AuthService) buildSession(ctx context.Context, userID, credentialID string) (*core.Session, error) {
	info, err := s.ledger.AccountInfo(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch account info: %w", err)
	}

	return &core.Session{
		UserID:         userID,
		SmartAccountID: info.SmartAccountID,
		PasskeyPubkey:  info.PasskeyPubkey,
		PublicKeyHex:   info.PublicKeyHex,
		Name:           info.Name,
		CreatedAt:      info.CreatedAt,
		CredentialID:   credentialID,
	}, nil
}
