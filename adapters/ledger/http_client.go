// Package ledger implements the LedgerClient port against the backend's
// JSON API.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/duo-labs/webauthn/protocol"

	"github.com/lumenpay/passgate/core"
	"github.com/lumenpay/passgate/ports"
)

// Client talks to the backend collaborator over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a ledger client for the given base URL.
func NewClient(baseURL string) ports.LedgerClient {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type verifyResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
	Error   string `json:"error"`
}

// RegistrationOptions fetches WebAuthn creation options for a new user.
func (c *Client) RegistrationOptions(ctx context.Context, name string) (*protocol.CredentialCreation, error) {
	var options protocol.CredentialCreation
	req := struct {
		Name string `json:"name"`
	}{Name: name}
	if err := c.postJSON(ctx, "/auth/register/options", req, &options); err != nil {
		return nil, err
	}
	return &options, nil
}

// VerifyRegistration submits the ceremony result and returns the new
// user id.
func (c *Client) VerifyRegistration(ctx context.Context, response *protocol.CredentialCreationResponse) (string, error) {
	var out verifyResponse
	if err := c.postJSON(ctx, "/auth/register/verify", response, &out); err != nil {
		return "", err
	}
	if !out.Success {
		return "", fmt.Errorf("registration not verified: %s", out.Error)
	}
	return out.UserID, nil
}

// LoginOptions fetches WebAuthn request options.
func (c *Client) LoginOptions(ctx context.Context) (*protocol.CredentialAssertion, error) {
	var options protocol.CredentialAssertion
	if err := c.postJSON(ctx, "/auth/login/options", struct{}{}, &options); err != nil {
		return nil, err
	}
	return &options, nil
}

// VerifyLogin submits the ceremony result and returns the user id.
func (c *Client) VerifyLogin(ctx context.Context, response *protocol.CredentialAssertionResponse) (string, error) {
	var out verifyResponse
	if err := c.postJSON(ctx, "/auth/login/verify", response, &out); err != nil {
		return "", err
	}
	if !out.Success {
		return "", fmt.Errorf("login not verified: %s", out.Error)
	}
	return out.UserID, nil
}

// AccountInfo looks up the smart-account record for a user.
func (c *Client) AccountInfo(ctx context.Context, userID string) (*core.AccountInfo, error) {
	var info core.AccountInfo
	if err := c.getJSON(ctx, "/accounts/"+url.PathEscape(userID), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Balance returns the account balance in minor units.
func (c *Client) Balance(ctx context.Context, smartAccountID string) (*big.Int, error) {
	var out struct {
		Balance string `json:"balance"`
	}
	if err := c.getJSON(ctx, "/accounts/"+url.PathEscape(smartAccountID)+"/balance", &out); err != nil {
		return nil, err
	}
	balance, ok := new(big.Int).SetString(out.Balance, 10)
	if !ok {
		return nil, fmt.Errorf("%w: unreadable balance %q", core.ErrNetworkFailure, out.Balance)
	}
	return balance, nil
}

// Nonce returns the account's current replay-protection counter.
func (c *Client) Nonce(ctx context.Context, smartAccountID string) (uint64, error) {
	var out struct {
		Nonce uint64 `json:"nonce"`
	}
	if err := c.getJSON(ctx, "/accounts/"+url.PathEscape(smartAccountID)+"/nonce", &out); err != nil {
		return 0, err
	}
	return out.Nonce, nil
}

// SubmitTransfer broadcasts the authorized transfer. A backend-reported
// rejection is surfaced with its stated reason.
func (c *Client) SubmitTransfer(ctx context.Context, submission *core.TransferSubmission) (*core.TransferReceipt, error) {
	req := struct {
		Sender            string `json:"senderAccountId"`
		Recipient         string `json:"recipient"`
		Amount            string `json:"amountMinorUnits"`
		SignatureHex      string `json:"signatureHex"`
		AuthenticatorData []byte `json:"authenticatorData"`
		ClientDataJSON    []byte `json:"clientDataJSON"`
		CredentialID      string `json:"credentialId"`
	}{
		Sender:            submission.Sender,
		Recipient:         submission.Recipient,
		Amount:            submission.Amount.String(),
		SignatureHex:      submission.SignatureHex,
		AuthenticatorData: submission.AuthenticatorData,
		ClientDataJSON:    submission.ClientDataJSON,
		CredentialID:      submission.CredentialID,
	}

	var out struct {
		Success         bool   `json:"success"`
		TransactionHash string `json:"transactionHash"`
		Error           string `json:"error"`
	}
	if err := c.postJSON(ctx, "/transfers", req, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("%w: %s", core.ErrSubmissionRejected, out.Error)
	}
	return &core.TransferReceipt{TransactionHash: out.TransactionHash}, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrNetworkFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrNetworkFailure, err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrNetworkFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%w: %s (%s)", core.ErrNetworkFailure, apiErr.Error, resp.Status)
		}
		return fmt.Errorf("%w: %s", core.ErrNetworkFailure, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", core.ErrNetworkFailure, err)
	}
	return nil
}
