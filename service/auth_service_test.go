package service

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/rangda/adapters/store"
	"github.com/layer-3/rangda/adapters/tokenizer"
	"github.com/layer-3/rangda/adapters/users"
	"github.com/layer-3/rangda/core"
)

type recordingPublisher struct {
	mu       sync.Mutex
	signIns  []string
	signOuts []string
}

func (p *recordingPublisher) PublishSignIn(ctx context.Context, userID, address string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signIns = append(p.signIns, userID)
	return nil
}

func (p *recordingPublisher) PublishSignOut(ctx context.Context, userID, tokenID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signOuts = append(p.signOuts, tokenID)
	return nil
}

type failingStore struct{}

func (failingStore) InvalidateToken(ctx context.Context, tokenID string, expiry time.Duration) error {
	return errors.New("store unreachable")
}

func (failingStore) IsTokenInvalidated(ctx context.Context, tokenID string) (bool, error) {
	return false, errors.New("store unreachable")
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func newTestService(t *testing.T) (*AuthService, *users.MemoryStore, *recordingPublisher) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	userStore := users.NewMemoryStore()
	pub := &recordingPublisher{}
	svc := NewAuthService(
		userStore,
		tokenizer.NewJWTTokenizer(key),
		store.NewMemoryStore(),
		pub,
		zerolog.Nop(),
	)
	return svc, userStore, pub
}

func validCredentials() *core.Credentials {
	return &core.Credentials{
		EthWalletAddress: "0xABC",
		BtcWalletAddress: "none",
		WalletChainID:    "1",
		WalletProvider:   "mainnet",
	}
}

func registeredUser() *core.User {
	return &core.User{
		ID:               "user-1",
		Name:             strPtr("alice"),
		Role:             intPtr(2),
		EthWalletAddress: strPtr("0xABC"),
		WalletChainID:    strPtr("1"),
		WalletProvider:   strPtr("mainnet"),
	}
}

func TestSignInRejectsMissingCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, _, err := svc.SignIn(context.Background(), nil)
	assert.ErrorIs(t, err, core.ErrNoCredentials)
}

func TestSignInRejectsEmptyEthAddress(t *testing.T) {
	svc, userStore, _ := newTestService(t)
	userStore.Add(registeredUser())

	creds := validCredentials()
	creds.EthWalletAddress = ""

	_, _, err := svc.SignIn(context.Background(), creds)
	assert.ErrorIs(t, err, core.ErrInvalidCredentials)
}

func TestSignInRejectsUnknownAddress(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, _, err := svc.SignIn(context.Background(), validCredentials())
	assert.ErrorIs(t, err, core.ErrUserNotFound)
}

func TestSignInIssuesSession(t *testing.T) {
	svc, userStore, pub := newTestService(t)
	userStore.Add(registeredUser())

	token, session, err := svc.SignIn(context.Background(), validCredentials())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, "user-1", session.User.ID)
	require.NotNil(t, session.User.EthWalletAddress)
	assert.Equal(t, "0xABC", *session.User.EthWalletAddress)
	require.NotNil(t, session.User.Role)
	assert.Equal(t, 2, *session.User.Role)

	// Eth identities carry chain id and provider under eth-specific token
	// keys, which the session projection does not read.
	assert.Nil(t, session.User.WalletChainID)
	assert.Nil(t, session.User.WalletProvider)

	assert.Equal(t, []string{"user-1"}, pub.signIns)
}

func TestSessionReadRenewsToken(t *testing.T) {
	svc, userStore, _ := newTestService(t)
	userStore.Add(registeredUser())
	svc.SetSessionTTL(time.Hour)

	token, _, err := svc.SignIn(context.Background(), validCredentials())
	require.NoError(t, err)

	renewed, session, err := svc.Session(context.Background(), token)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed)
	assert.Equal(t, "user-1", session.User.ID)

	// The renewed token is itself valid and carries the same identity.
	_, again, err := svc.Session(context.Background(), renewed)
	require.NoError(t, err)
	assert.Equal(t, session, again)
}

func TestSessionRejectsGarbageToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, _, err := svc.Session(context.Background(), "garbage")
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestSignOutRevokesSession(t *testing.T) {
	svc, userStore, pub := newTestService(t)
	userStore.Add(registeredUser())

	token, _, err := svc.SignIn(context.Background(), validCredentials())
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(context.Background(), token))
	assert.Len(t, pub.signOuts, 1)

	_, _, err = svc.Session(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestSignOutRevocationCoversRenewedTokens(t *testing.T) {
	svc, userStore, _ := newTestService(t)
	userStore.Add(registeredUser())

	token, _, err := svc.SignIn(context.Background(), validCredentials())
	require.NoError(t, err)

	renewed, _, err := svc.Session(context.Background(), token)
	require.NoError(t, err)

	// Revoking through the original token kills the renewed copy too; they
	// share a lineage.
	require.NoError(t, svc.SignOut(context.Background(), token))

	_, _, err = svc.Session(context.Background(), renewed)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestSignOutGarbageTokenSucceeds(t *testing.T) {
	svc, _, pub := newTestService(t)

	require.NoError(t, svc.SignOut(context.Background(), "garbage"))
	assert.Empty(t, pub.signOuts)
}

func TestSessionStoreFailureIsTyped(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	userStore := users.NewMemoryStore()
	userStore.Add(registeredUser())
	svc := NewAuthService(
		userStore,
		tokenizer.NewJWTTokenizer(key),
		failingStore{},
		nil,
		zerolog.Nop(),
	)

	token, _, err := svc.SignIn(context.Background(), validCredentials())
	require.NoError(t, err)

	_, _, err = svc.Session(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrStoreOperationFailed)
	assert.NotErrorIs(t, err, core.ErrTokenRevoked)
}

func TestSignOutExpiredTokenSucceeds(t *testing.T) {
	svc, userStore, pub := newTestService(t)
	userStore.Add(registeredUser())
	svc.SetSessionTTL(-time.Hour)

	token, _, err := svc.SignIn(context.Background(), validCredentials())
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(context.Background(), token))
	assert.Empty(t, pub.signOuts)
}

func TestFetchUser(t *testing.T) {
	svc, userStore, _ := newTestService(t)
	userStore.Add(registeredUser())

	user, err := svc.FetchUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	_, err = svc.FetchUser(context.Background(), "nope")
	assert.ErrorIs(t, err, core.ErrUserNotFound)
}
