package core

import "time"

// DefaultSessionTTL is how long an issued session token lives. Reads renew
// it implicitly, so it only lapses after sixty days of inactivity.
const DefaultSessionTTL = 60 * 24 * time.Hour

// TokenClaims is the signed carrier of session state. It is composed from a
// User exactly once, at sign-in; session reads pass it through unchanged
// apart from the expiry.
type TokenClaims struct {
	// JTI identifies this token lineage for revocation. It survives renewal,
	// so a sign-out invalidates every renewed copy at once.
	JTI string

	UserID string
	Name   *string
	Image  *string
	Role   *int

	// Wallet claims. The eth branch of MergeUser writes the Eth-prefixed
	// chain/provider fields, the btc branch the generic ones; the session
	// projection reads only the generic pair. The asymmetry is inherited
	// from the system this replaces and is kept intact on purpose.
	EthWalletAddress  *string
	EthWalletChainID  *string
	EthWalletProvider *string
	BtcWalletAddress  *string
	WalletChainID     *string
	WalletProvider    *string

	IssuedAt  time.Time
	ExpiresAt time.Time
}

// MergeUser folds a freshly resolved user identity into the claims. This is
// the only place user data enters the token; subsequent reads never call it.
func (c *TokenClaims) MergeUser(u *User) {
	if u == nil {
		return
	}

	c.UserID = u.ID
	c.Name = u.Name
	c.Image = u.Image
	c.Role = u.Role

	switch {
	case u.EthWalletAddress != nil:
		c.EthWalletAddress = u.EthWalletAddress
		c.EthWalletChainID = u.WalletChainID
		c.EthWalletProvider = u.WalletProvider
	case u.BtcWalletAddress != nil:
		c.BtcWalletAddress = u.BtcWalletAddress
		c.WalletChainID = u.WalletChainID
		c.WalletProvider = u.WalletProvider
	}
}

// Expired reports whether the claims are past their expiry at the given time.
func (c *TokenClaims) Expired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}
