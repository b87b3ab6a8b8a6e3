package ports

import "github.com/layer-3/rangda/core"

// Tokenizer converts session claims to and from their signed wire form.
type Tokenizer interface {
	// IssueToken signs the claims and returns the compact token string.
	IssueToken(claims *core.TokenClaims) (string, error)

	// ParseToken verifies a token string and returns its claims.
	// Expired tokens fail with core.ErrTokenExpired.
	ParseToken(token string) (*core.TokenClaims, error)
}
