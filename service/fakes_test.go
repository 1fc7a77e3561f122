package service

import (
	"context"
	"math/big"
	"sync/atomic"

	"github.com/duo-labs/webauthn/protocol"

	"github.com/lumenpay/passgate/core"
)

const (
	testAccount   = "GBRPYHIL2CI3FNQ4BXLFMNDLFJUNPU2HY3ZMFSHONUCEOASW7QC7OX2H"
	testRecipient = "GA7QYNF7SOWQ3GLR2BGMZEHXAVIRZA4KVWLTJJFC7MGXUA74P7UJVSGZ"
)

// fakeLedger implements ports.LedgerClient with canned data and call
// counters.
type fakeLedger struct {
	nonce       uint64
	nonceErr    error
	nonceCalls  atomic.Int32
	submitErr   error
	submissions []*core.TransferSubmission
	receipt     *core.TransferReceipt
	account     *core.AccountInfo
	userID      string
	balance     *big.Int
}

func (f *fakeLedger) RegistrationOptions(ctx context.Context, name string) (*protocol.CredentialCreation, error) {
	return &protocol.CredentialCreation{}, nil
}

func (f *fakeLedger) VerifyRegistration(ctx context.Context, response *protocol.CredentialCreationResponse) (string, error) {
	return f.userID, nil
}

func (f *fakeLedger) LoginOptions(ctx context.Context) (*protocol.CredentialAssertion, error) {
	return &protocol.CredentialAssertion{}, nil
}

func (f *fakeLedger) VerifyLogin(ctx context.Context, response *protocol.CredentialAssertionResponse) (string, error) {
	return f.userID, nil
}

func (f *fakeLedger) AccountInfo(ctx context.Context, userID string) (*core.AccountInfo, error) {
	return f.account, nil
}

func (f *fakeLedger) Balance(ctx context.Context, smartAccountID string) (*big.Int, error) {
	return f.balance, nil
}

func (f *fakeLedger) Nonce(ctx context.Context, smartAccountID string) (uint64, error) {
	f.nonceCalls.Add(1)
	if f.nonceErr != nil {
		return 0, f.nonceErr
	}
	return f.nonce, nil
}

func (f *fakeLedger) SubmitTransfer(ctx context.Context, submission *core.TransferSubmission) (*core.TransferReceipt, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submissions = append(f.submissions, submission)
	if f.receipt != nil {
		return f.receipt, nil
	}
	return &core.TransferReceipt{TransactionHash: "deadbeef"}, nil
}

// fakeAuthenticator implements ports.Authenticator; assertFn decides
// how the ceremony behaves.
type fakeAuthenticator struct {
	createFn      func(ctx context.Context, options *protocol.CredentialCreation) (*protocol.CredentialCreationResponse, error)
	assertFn      func(ctx context.Context, options *protocol.CredentialAssertion) (*protocol.CredentialAssertionResponse, error)
	lastChallenge []byte
}

func (f *fakeAuthenticator) Create(ctx context.Context, options *protocol.CredentialCreation) (*protocol.CredentialCreationResponse, error) {
	return f.createFn(ctx, options)
}

func (f *fakeAuthenticator) Assert(ctx context.Context, options *protocol.CredentialAssertion) (*protocol.CredentialAssertionResponse, error) {
	f.lastChallenge = append([]byte(nil), options.Response.Challenge...)
	return f.assertFn(ctx, options)
}

// fakeEvents records published events.
type fakeEvents struct {
	transfers int
	logouts   int
}

func (f *fakeEvents) PublishTransferSubmitted(ctx context.Context, sender, recipient string, amount *big.Int, transactionHash string) error {
	f.transfers++
	return nil
}

func (f *fakeEvents) PublishLogout(ctx context.Context, userID, smartAccountID string) error {
	f.logouts++
	return nil
}

func assertionWithSignature(der []byte) *protocol.CredentialAssertionResponse {
	return &protocol.CredentialAssertionResponse{
		PublicKeyCredential: protocol.PublicKeyCredential{
			Credential: protocol.Credential{ID: "cred-1", Type: "public-key"},
		},
		AssertionResponse: protocol.AuthenticatorAssertionResponse{
			AuthenticatorResponse: protocol.AuthenticatorResponse{
				ClientDataJSON: []byte(`{"type":"webauthn.get"}`),
			},
			AuthenticatorData: []byte{0x01, 0x02},
			Signature:         der,
		},
	}
}
