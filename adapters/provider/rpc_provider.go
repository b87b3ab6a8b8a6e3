// Package provider implements the wallet provider port against a JSON-RPC
// wallet endpoint, such as a local node with unlocked accounts or a
// wallet-exposed RPC bridge.
package provider

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/layer-3/rangda/ports"
)

// DefaultPollInterval is how often the provider polls for account and chain
// changes. accountsChanged/chainChanged are wallet-level notifications with
// no node RPC equivalent, so polling stands in for the push events.
const DefaultPollInterval = 2 * time.Second

// RPCProvider talks to a wallet over JSON-RPC.
type RPCProvider struct {
	rpc  *rpc.Client
	eth  *ethclient.Client
	log  zerolog.Logger
	poll time.Duration

	mu       sync.Mutex
	accounts []string
	chainID  int64
}

// Dial connects to the wallet RPC endpoint at url.
func Dial(ctx context.Context, url string, log zerolog.Logger) (*RPCProvider, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial wallet rpc: %w", err)
	}
	return &RPCProvider{
		rpc:  client,
		eth:  ethclient.NewClient(client),
		log:  log.With().Str("component", "provider").Logger(),
		poll: DefaultPollInterval,
	}, nil
}

// RequestAccounts asks the wallet for account access. Wallets that do not
// implement eth_requestAccounts fall back to the plain account list.
func (p *RPCProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := p.rpc.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		p.log.Debug().Err(err).Msg("eth_requestAccounts unsupported, falling back to eth_accounts")
		if err := p.rpc.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
			return nil, fmt.Errorf("failed to request accounts: %w", err)
		}
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("wallet exposes no accounts")
	}

	p.mu.Lock()
	p.accounts = accounts
	p.mu.Unlock()
	return accounts, nil
}

// GetNetwork reports the chain the wallet is currently on.
func (p *RPCProvider) GetNetwork(ctx context.Context) (ports.Network, error) {
	chainID, err := p.eth.ChainID(ctx)
	if err != nil {
		return ports.Network{}, fmt.Errorf("failed to read chain id: %w", err)
	}

	id := chainID.Int64()
	p.mu.Lock()
	p.chainID = id
	p.mu.Unlock()

	return ports.Network{ChainID: id, Name: chainName(id)}, nil
}

// GetSigner returns a signer for the wallet's first account.
func (p *RPCProvider) GetSigner(ctx context.Context) (ports.Signer, error) {
	p.mu.Lock()
	accounts := p.accounts
	p.mu.Unlock()

	if len(accounts) == 0 {
		var err error
		accounts, err = p.RequestAccounts(ctx)
		if err != nil {
			return nil, err
		}
	}
	return &rpcSigner{rpc: p.rpc, address: accounts[0]}, nil
}

// SubscribeAccountsChanged polls the account list and delivers it whenever
// it changes.
func (p *RPCProvider) SubscribeAccountsChanged(ch chan<- []string) event.Subscription {
	return event.NewSubscription(func(quit <-chan struct{}) error {
		ticker := time.NewTicker(p.poll)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				var accounts []string
				if err := p.rpc.Call(&accounts, "eth_accounts"); err != nil {
					p.log.Debug().Err(err).Msg("account poll failed")
					continue
				}
				p.mu.Lock()
				changed := !equalAccounts(p.accounts, accounts)
				if changed {
					p.accounts = accounts
				}
				p.mu.Unlock()
				if changed {
					select {
					case ch <- accounts:
					case <-quit:
						return nil
					}
				}
			case <-quit:
				return nil
			}
		}
	})
}

// SubscribeChainChanged polls the chain id and delivers it whenever it
// changes, converted from the wire's hex encoding.
func (p *RPCProvider) SubscribeChainChanged(ch chan<- int64) event.Subscription {
	return event.NewSubscription(func(quit <-chan struct{}) error {
		ticker := time.NewTicker(p.poll)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				var raw hexutil.Big
				if err := p.rpc.Call(&raw, "eth_chainId"); err != nil {
					p.log.Debug().Err(err).Msg("chain poll failed")
					continue
				}
				id := raw.ToInt().Int64()
				p.mu.Lock()
				changed := p.chainID != 0 && p.chainID != id
				p.chainID = id
				p.mu.Unlock()
				if changed {
					select {
					case ch <- id:
					case <-quit:
						return nil
					}
				}
			case <-quit:
				return nil
			}
		}
	})
}

// Balance returns the native-token balance of an address in ether units.
func (p *RPCProvider) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	wei, err := p.eth.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read balance: %w", err)
	}
	return decimal.NewFromBigInt(wei, -18), nil
}

// Close tears down the RPC connection.
func (p *RPCProvider) Close() {
	p.rpc.Close()
}

type rpcSigner struct {
	rpc     *rpc.Client
	address string
}

func (s *rpcSigner) Address() string {
	return s.address
}

// SignMessage signs with personal_sign through the wallet.
func (s *rpcSigner) SignMessage(ctx context.Context, msg []byte) ([]byte, error) {
	var sig hexutil.Bytes
	if err := s.rpc.CallContext(ctx, &sig, "personal_sign", hexutil.Encode(msg), s.address); err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}
	return sig, nil
}

func equalAccounts(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var _ ports.WalletProvider = (*RPCProvider)(nil)
