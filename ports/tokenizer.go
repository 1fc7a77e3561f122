package ports

import "github.com/lumenpay/passgate/core"

// Tokenizer converts between the active session and the access tokens
// guarding the local API surface.
type Tokenizer interface {
	SessionToAccessToken(session *core.Session) (string, error)
	AccessTokenToSession(token string) (*core.Session, error)
}
