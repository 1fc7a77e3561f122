package tokenizer

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenpay/passgate/core"
)

func newTokenizer(t *testing.T) *JWTTokenizer {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return NewJWTTokenizer(key).(*JWTTokenizer)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tk := newTokenizer(t)

	session := &core.Session{
		UserID:         "user-1",
		SmartAccountID: "GBRPYHIL2CI3FNQ4BXLFMNDLFJUNPU2HY3ZMFSHONUCEOASW7QC7OX2H",
		Name:           "alice",
	}

	token, err := tk.SessionToAccessToken(session)
	require.NoError(t, err)

	parsed, err := tk.AccessTokenToSession(token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, parsed.UserID)
	assert.Equal(t, session.SmartAccountID, parsed.SmartAccountID)
	assert.Equal(t, session.Name, parsed.Name)
}

func TestAccessTokenRejectsIncompleteSession(t *testing.T) {
	tk := newTokenizer(t)
	_, err := tk.SessionToAccessToken(&core.Session{UserID: "user-1"})
	require.ErrorIs(t, err, core.ErrInvalidSession)
}

func TestAccessTokenRejectsForeignKey(t *testing.T) {
	token, err := newTokenizer(t).SessionToAccessToken(&core.Session{
		UserID:         "user-1",
		SmartAccountID: "GBRPYHIL2CI3FNQ4BXLFMNDLFJUNPU2HY3ZMFSHONUCEOASW7QC7OX2H",
	})
	require.NoError(t, err)

	_, err = newTokenizer(t).AccessTokenToSession(token)
	require.Error(t, err, "token signed by another key must not parse")
}
