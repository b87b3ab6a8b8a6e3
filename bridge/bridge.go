// Package bridge translates a live wallet connection into server-side
// session credentials.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/layer-3/rangda/connector"
	"github.com/layer-3/rangda/core"
)

// Bridge submits wallet credentials to the session server. It keeps the
// opaque session cookie in its jar, so session reads after a successful
// sign-in come back authenticated.
type Bridge struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// New creates a bridge for the server at baseURL.
func New(baseURL string, log zerolog.Logger) (*Bridge, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Bridge{
		baseURL: baseURL,
		client: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("component", "bridge").Logger(),
	}, nil
}

// SignIn packages the connected wallet's public identity as credentials and
// submits them. Callers that never awaited Connect are caught here: an
// incomplete state fails locally with ErrNotConnected and no request is
// sent. The server's verdict is only logged; whether a session exists is
// observed through Session.
func (b *Bridge) SignIn(ctx context.Context, state connector.WalletState) error {
	if state.Address == "" || state.ChainID == 0 || state.Provider == nil {
		b.log.Error().Msg("wallet information missing, sign-in not attempted")
		return core.ErrNotConnected
	}

	label := "unknown"
	network, err := state.Provider.GetNetwork(ctx)
	if err != nil {
		b.log.Warn().Err(err).Msg("failed to resolve network name")
	} else if network.Name != "" {
		label = network.Name
	}

	creds := core.Credentials{
		EthWalletAddress: state.Address,
		BtcWalletAddress: "",
		WalletChainID:    strconv.FormatInt(state.ChainID, 10),
		WalletProvider:   label,
	}

	body, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/auth/signin", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		b.log.Error().Err(err).Msg("sign-in request failed")
		return nil
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	b.log.Info().Int("status", resp.StatusCode).Str("address", creds.EthWalletAddress).Msg("sign-in submitted")
	return nil
}

// Session reads the current session from the server using the cookie jar.
// An anonymous caller gets an empty session, not an error.
func (b *Bridge) Session(ctx context.Context) (*core.Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/auth/session", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build session request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("session request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("session request returned status %d", resp.StatusCode)
	}

	var session core.Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SaveCookies persists the jar's cookies for the server to path, so a later
// process can resume the session. Without this a sign-out from a fresh
// process carries no cookie and revokes nothing.
func (b *Bridge) SaveCookies(path string) error {
	base, err := url.Parse(b.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse server url: %w", err)
	}

	var stored []storedCookie
	for _, c := range b.client.Jar.Cookies(base) {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode cookies: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write cookie file: %w", err)
	}
	return nil
}

// LoadCookies restores previously saved cookies into the jar. A missing
// file is not an error; there is simply no session to resume.
func (b *Bridge) LoadCookies(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read cookie file: %w", err)
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("failed to decode cookie file: %w", err)
	}

	base, err := url.Parse(b.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse server url: %w", err)
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	b.client.Jar.SetCookies(base, cookies)
	return nil
}

// SignOut destroys the server-side session associated with the jar's cookie.
func (b *Bridge) SignOut(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/auth/signout", nil)
	if err != nil {
		return fmt.Errorf("failed to build sign-out request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("sign-out request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	b.log.Info().Int("status", resp.StatusCode).Msg("signed out")
	return nil
}
