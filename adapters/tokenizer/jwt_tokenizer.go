package tokenizer

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/layer-3/rangda/core"
	"github.com/layer-3/rangda/ports"
)

// AudienceSession marks session tokens so no other token kind parses as one.
const AudienceSession = "rangda:session"

// JWTTokenizer implements the Tokenizer port with ES256-signed JWTs.
type JWTTokenizer struct {
	signKey *ecdsa.PrivateKey
}

// NewJWTTokenizer creates a tokenizer signing with the given key.
func NewJWTTokenizer(signKey *ecdsa.PrivateKey) ports.Tokenizer {
	return &JWTTokenizer{signKey: signKey}
}

// IssueToken signs the claims into a compact session token.
func (j *JWTTokenizer) IssueToken(c *core.TokenClaims) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			ID:        c.JTI,
			Audience:  jwt.ClaimStrings{AudienceSession},
			IssuedAt:  jwt.NewNumericDate(c.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
		Name:              c.Name,
		Image:             c.Image,
		Role:              c.Role,
		EthWalletAddress:  c.EthWalletAddress,
		EthWalletChainID:  c.EthWalletChainID,
		EthWalletProvider: c.EthWalletProvider,
		BtcWalletAddress:  c.BtcWalletAddress,
		WalletChainID:     c.WalletChainID,
		WalletProvider:    c.WalletProvider,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)

	signed, err := token.SignedString(j.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a session token and returns its claims. An expired
// token fails with core.ErrTokenExpired; anything else malformed with
// core.ErrInvalidToken.
func (j *JWTTokenizer) ParseToken(tokenStr string) (*core.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return &j.signKey.PublicKey, nil
	}, jwt.WithAudience(AudienceSession))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, core.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, core.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, core.ErrInvalidToken
	}

	out := &core.TokenClaims{
		JTI:               claims.ID,
		UserID:            claims.Subject,
		Name:              claims.Name,
		Image:             claims.Image,
		Role:              claims.Role,
		EthWalletAddress:  claims.EthWalletAddress,
		EthWalletChainID:  claims.EthWalletChainID,
		EthWalletProvider: claims.EthWalletProvider,
		BtcWalletAddress:  claims.BtcWalletAddress,
		WalletChainID:     claims.WalletChainID,
		WalletProvider:    claims.WalletProvider,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
