package tokenizer

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the JWT shape of a session token. The wallet claim keys
// mirror the domain asymmetry: eth identities use the Eth-prefixed chain and
// provider keys, btc identities the generic ones.
type SessionClaims struct {
	jwt.RegisteredClaims
	Name              *string `json:"name,omitempty"`
	Image             *string `json:"image,omitempty"`
	Role              *int    `json:"role,omitempty"`
	EthWalletAddress  *string `json:"ethWalletAddress,omitempty"`
	EthWalletChainID  *string `json:"ethWalletChainId,omitempty"`
	EthWalletProvider *string `json:"ethWalletProvider,omitempty"`
	BtcWalletAddress  *string `json:"btcWalletAddress,omitempty"`
	WalletChainID     *string `json:"walletChainId,omitempty"`
	WalletProvider    *string `json:"walletProvider,omitempty"`
}
