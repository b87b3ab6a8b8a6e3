package ports

import (
	"context"

	"github.com/ethereum/go-ethereum/event"
)

// Network describes the chain a wallet provider is currently on.
type Network struct {
	ChainID int64
	Name    string
}

// Signer is a capability handle able to produce signatures on behalf of a
// wallet address. The connector owns the only live copy; it must never be
// cached elsewhere.
type Signer interface {
	Address() string
	SignMessage(ctx context.Context, msg []byte) ([]byte, error)
}

// WalletProvider abstracts an external wallet the user controls: account
// access requests, network queries, signing, and change notifications.
//
// RequestAccounts may block until the user approves access in the wallet's
// own UI; callers pass a context but the provider applies its own timeout
// semantics on top.
type WalletProvider interface {
	RequestAccounts(ctx context.Context) ([]string, error)
	GetNetwork(ctx context.Context) (Network, error)
	GetSigner(ctx context.Context) (Signer, error)

	// SubscribeAccountsChanged delivers the new account list whenever the
	// wallet switches accounts, an empty slice meaning none remain.
	SubscribeAccountsChanged(ch chan<- []string) event.Subscription

	// SubscribeChainChanged delivers the new chain id whenever the wallet
	// switches networks.
	SubscribeChainChanged(ch chan<- int64) event.Subscription
}
