package core

// User is the application account record a wallet address resolves to.
// It is owned by the user datastore; the auth core only ever reads it.
type User struct {
	ID               string  `json:"id"`
	Name             *string `json:"name,omitempty"`
	Image            *string `json:"image,omitempty"`
	EthWalletAddress *string `json:"ethWalletAddress,omitempty"`
	BtcWalletAddress *string `json:"btcWalletAddress,omitempty"`
	WalletChainID    *string `json:"walletChainId,omitempty"`
	WalletProvider   *string `json:"walletProvider,omitempty"`
	Role             *int    `json:"role,omitempty"`
}
