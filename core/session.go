package core

// SessionUser is the identity slice of a session exposed to request handlers.
type SessionUser struct {
	ID               string  `json:"id"`
	Name             *string `json:"name"`
	Image            *string `json:"image"`
	Role             *int    `json:"role"`
	BtcWalletAddress *string `json:"btcWalletAddress"`
	EthWalletAddress *string `json:"ethWalletAddress"`
	WalletChainID    *string `json:"walletChainId"`
	WalletProvider   *string `json:"walletProvider"`
}

// Session is the per-request, read-only view of the authenticated user.
// It is derived from TokenClaims on every read and never persisted.
type Session struct {
	User SessionUser `json:"user"`
}

// SessionFromClaims projects token claims into a session. The projection is
// pure and total: absent claims simply yield absent session fields. Chain id
// and provider come from the generic claim keys only, so identities composed
// through the eth branch of MergeUser carry neither (see TokenClaims).
func SessionFromClaims(c *TokenClaims) Session {
	return Session{
		User: SessionUser{
			ID:               c.UserID,
			Name:             c.Name,
			Image:            c.Image,
			Role:             c.Role,
			BtcWalletAddress: c.BtcWalletAddress,
			EthWalletAddress: c.EthWalletAddress,
			WalletChainID:    c.WalletChainID,
			WalletProvider:   c.WalletProvider,
		},
	}
}
