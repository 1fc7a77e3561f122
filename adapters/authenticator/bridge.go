// Package authenticator implements the Authenticator port against a
// local signer bridge: a companion process (native-messaging host or
// hardware agent) that runs the actual platform ceremony and returns
// the signed result.
package authenticator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/duo-labs/webauthn/protocol"

	"github.com/lumenpay/passgate/core"
	"github.com/lumenpay/passgate/ports"
)

// Bridge forwards ceremony options to the signer bridge over HTTP. The
// ceremony waits on a live human action, so no client-level timeout is
// set here; the caller bounds the wait through the request context.
type Bridge struct {
	baseURL string
	http    *http.Client
}

// NewBridge creates an authenticator bridge for the given base URL.
func NewBridge(baseURL string) ports.Authenticator {
	return &Bridge{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Create runs a registration ceremony.
func (b *Bridge) Create(ctx context.Context, options *protocol.CredentialCreation) (*protocol.CredentialCreationResponse, error) {
	var response protocol.CredentialCreationResponse
	if err := b.ceremony(ctx, "/webauthn/create", options, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Assert runs an authentication ceremony over the supplied options.
func (b *Bridge) Assert(ctx context.Context, options *protocol.CredentialAssertion) (*protocol.CredentialAssertionResponse, error) {
	var response protocol.CredentialAssertionResponse
	if err := b.ceremony(ctx, "/webauthn/get", options, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (b *Bridge) ceremony(ctx context.Context, path string, options, out interface{}) error {
	payload, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("encode ceremony options: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrNetworkFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		// Deadline and cancellation surface through the context; the
		// orchestrator distinguishes them from transport failures.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", core.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrNetworkFailure, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusConflict:
		// The bridge reports a declined or dismissed ceremony with a
		// 4xx carrying the DOM error name.
		var denial struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &denial)
		return fmt.Errorf("%w: %s", core.ErrAssertionDenied, denial.Error)
	default:
		return fmt.Errorf("%w: %s", core.ErrNetworkFailure, resp.Status)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode ceremony response: %v", core.ErrNetworkFailure, err)
	}
	return nil
}
