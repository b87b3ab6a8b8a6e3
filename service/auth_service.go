// Package service implements the credential exchange: wallet credentials in,
// signed session tokens out.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/layer-3/rangda/core"
	"github.com/layer-3/rangda/ports"
)

// AuthService validates submitted wallet credentials, resolves them against
// the user datastore and mints session tokens.
//
// It performs no wallet-signature verification: the submitted address is
// trusted to have come from a connected wallet. This is a lookup-and-fail
// gate, not a proof of key control, and is a known gap of the flow it
// reimplements.
type AuthService struct {
	users      ports.UserStore
	tokenizer  ports.Tokenizer
	store      ports.Store
	eventPub   ports.EventPublisher // optional
	log        zerolog.Logger
	sessionTTL time.Duration
}

// NewAuthService creates the auth service with the default 60-day session
// lifetime.
func NewAuthService(
	users ports.UserStore,
	tokenizer ports.Tokenizer,
	store ports.Store,
	eventPub ports.EventPublisher,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		tokenizer:  tokenizer,
		store:      store,
		eventPub:   eventPub,
		log:        log.With().Str("component", "auth").Logger(),
		sessionTTL: core.DefaultSessionTTL,
	}
}

// SetSessionTTL overrides the session lifetime.
func (s *AuthService) SetSessionTTL(ttl time.Duration) {
	s.sessionTTL = ttl
}

// SessionTTL returns the configured session lifetime.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// SignIn exchanges wallet credentials for a session token. Single pass, no
// retries: malformed payloads fail with ErrNoCredentials or
// ErrInvalidCredentials, an unregistered address with ErrUserNotFound. On
// success the resolved identity is folded into fresh claims once, signed,
// and never touched again for the lifetime of the token.
func (s *AuthService) SignIn(ctx context.Context, creds *core.Credentials) (string, core.Session, error) {
	if err := creds.Validate(); err != nil {
		return "", core.Session{}, err
	}

	user, err := s.users.FindByEthAddress(ctx, creds.EthWalletAddress)
	if err != nil {
		return "", core.Session{}, fmt.Errorf("user lookup failed: %w", err)
	}
	if user == nil {
		return "", core.Session{}, core.ErrUserNotFound
	}

	now := time.Now()
	claims := &core.TokenClaims{
		JTI:       uuid.New().String(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	claims.MergeUser(user)

	token, err := s.tokenizer.IssueToken(claims)
	if err != nil {
		return "", core.Session{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("address", creds.EthWalletAddress).Msg("session issued")

	if s.eventPub != nil {
		if err := s.eventPub.PublishSignIn(ctx, user.ID, creds.EthWalletAddress); err != nil {
			// The session is already issued; event delivery is best effort.
			s.log.Warn().Err(err).Msg("failed to publish sign-in event")
		}
	}

	return token, core.SessionFromClaims(claims), nil
}

// Session validates a token and projects it into the per-request session
// view. Each read renews the token: the same claims are re-signed with a
// fresh expiry, so a session only lapses after sessionTTL of inactivity.
// Revoked lineages fail with ErrTokenRevoked, revocation-store outages with
// ErrStoreOperationFailed so callers do not confuse the two.
func (s *AuthService) Session(ctx context.Context, token string) (string, core.Session, error) {
	claims, err := s.tokenizer.ParseToken(token)
	if err != nil {
		return "", core.Session{}, err
	}

	revoked, err := s.store.IsTokenInvalidated(ctx, claims.JTI)
	if err != nil {
		return "", core.Session{}, fmt.Errorf("%w: checking token revocation: %v", core.ErrStoreOperationFailed, err)
	}
	if revoked {
		return "", core.Session{}, core.ErrTokenRevoked
	}

	claims.ExpiresAt = time.Now().Add(s.sessionTTL)
	renewed, err := s.tokenizer.IssueToken(claims)
	if err != nil {
		return "", core.Session{}, fmt.Errorf("failed to renew session token: %w", err)
	}

	return renewed, core.SessionFromClaims(claims), nil
}

// SignOut revokes a token lineage for the remainder of its lifetime. An
// expired or unparseable token cannot open a session anyway, so signing it
// out succeeds without touching the store; the caller still gets to drop
// its cookie.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokenizer.ParseToken(token)
	if errors.Is(err, core.ErrTokenExpired) || errors.Is(err, core.ErrInvalidToken) {
		return nil
	}
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.store.InvalidateToken(ctx, claims.JTI, ttl); err != nil {
		return fmt.Errorf("%w: revoking token: %v", core.ErrStoreOperationFailed, err)
	}

	s.log.Info().Str("user_id", claims.UserID).Str("token_id", claims.JTI).Msg("session revoked")

	if s.eventPub != nil {
		if err := s.eventPub.PublishSignOut(ctx, claims.UserID, claims.JTI); err != nil {
			s.log.Warn().Err(err).Msg("failed to publish sign-out event")
		}
	}

	return nil
}

// FetchUser returns the full datastore record for an authenticated user.
func (s *AuthService) FetchUser(ctx context.Context, id string) (*core.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	if user == nil {
		return nil, core.ErrUserNotFound
	}
	return user, nil
}
