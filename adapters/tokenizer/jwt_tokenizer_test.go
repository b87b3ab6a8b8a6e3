package tokenizer

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/rangda/core"
)

func newTestKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return key
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestIssueAndParseRoundTrip(t *testing.T) {
	tok := NewJWTTokenizer(newTestKey(t))

	now := time.Now()
	claims := &core.TokenClaims{
		JTI:               "jti-1",
		UserID:            "user-1",
		Name:              strPtr("alice"),
		Image:             strPtr("https://img.example/alice.png"),
		Role:              intPtr(1),
		EthWalletAddress:  strPtr("0xABC"),
		EthWalletChainID:  strPtr("1"),
		EthWalletProvider: strPtr("mainnet"),
		IssuedAt:          now,
		ExpiresAt:         now.Add(time.Hour),
	}

	signed, err := tok.IssueToken(claims)
	require.NoError(t, err)

	parsed, err := tok.ParseToken(signed)
	require.NoError(t, err)

	assert.Equal(t, "jti-1", parsed.JTI)
	assert.Equal(t, "user-1", parsed.UserID)
	require.NotNil(t, parsed.Name)
	assert.Equal(t, "alice", *parsed.Name)
	require.NotNil(t, parsed.Role)
	assert.Equal(t, 1, *parsed.Role)
	require.NotNil(t, parsed.EthWalletAddress)
	assert.Equal(t, "0xABC", *parsed.EthWalletAddress)
	require.NotNil(t, parsed.EthWalletChainID)
	assert.Equal(t, "1", *parsed.EthWalletChainID)
	assert.Nil(t, parsed.WalletChainID)
	assert.WithinDuration(t, claims.ExpiresAt, parsed.ExpiresAt, time.Second)
}

func TestParseExpiredToken(t *testing.T) {
	tok := NewJWTTokenizer(newTestKey(t))

	now := time.Now()
	signed, err := tok.IssueToken(&core.TokenClaims{
		JTI:       "jti-2",
		UserID:    "user-2",
		IssuedAt:  now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	})
	require.NoError(t, err)

	_, err = tok.ParseToken(signed)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestParseGarbage(t *testing.T) {
	tok := NewJWTTokenizer(newTestKey(t))

	_, err := tok.ParseToken("not-a-token")
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestParseRejectsForeignKey(t *testing.T) {
	issuer := NewJWTTokenizer(newTestKey(t))
	verifier := NewJWTTokenizer(newTestKey(t))

	now := time.Now()
	signed, err := issuer.IssueToken(&core.TokenClaims{
		JTI:       "jti-3",
		UserID:    "user-3",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = verifier.ParseToken(signed)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestParseRejectsWrongAudience(t *testing.T) {
	key := newTestKey(t)
	tok := NewJWTTokenizer(key)

	now := time.Now()
	foreign := jwt.NewWithClaims(jwt.SigningMethodES256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-4",
			ID:        "jti-4",
			Audience:  jwt.ClaimStrings{"something:else"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	signed, err := foreign.SignedString(key)
	require.NoError(t, err)

	_, err = tok.ParseToken(signed)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}
