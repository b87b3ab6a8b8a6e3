package core

// Credentials is the wire payload a wallet client submits to sign in.
// All four fields are required; the current client flow always submits
// BtcWalletAddress empty, single-chain wallets being the only ones supported.
type Credentials struct {
	EthWalletAddress string `json:"ethWalletAddress"`
	BtcWalletAddress string `json:"btcWalletAddress"`
	WalletChainID    string `json:"walletChainId"`
	WalletProvider   string `json:"walletProvider"`
}

// Validate gates a sign-in attempt. A nil receiver means no payload was
// submitted at all, which is reported distinctly from a malformed one.
func (c *Credentials) Validate() error {
	if c == nil {
		return ErrNoCredentials
	}
	if c.EthWalletAddress == "" || c.BtcWalletAddress == "" ||
		c.WalletChainID == "" || c.WalletProvider == "" {
		return ErrInvalidCredentials
	}
	return nil
}
