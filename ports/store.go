package ports

import (
	"context"

	"github.com/lumenpay/passgate/core"
)

// SessionStore persists the single logged-in identity. Save rejects
// incomplete sessions and overwrites any previous record; Load returns
// nil when no session is persisted or the stored record is corrupt.
// IsActive reports whether a complete session is currently persisted.
type SessionStore interface {
	Save(ctx context.Context, session *core.Session) error
	Load(ctx context.Context) (*core.Session, error)
	IsActive(ctx context.Context) (bool, error)
	Clear(ctx context.Context) error
}
