package tokenizer

import "github.com/golang-jwt/jwt/v5"

// AccessClaims are the JWT claims for a local API access token. The
// subject is the user id; the smart account rides along so protected
// handlers don't need a store lookup.
type AccessClaims struct {
	jwt.RegisteredClaims
	SmartAccountID string `json:"acct"`
	Name           string `json:"name,omitempty"`
}
