// Package connector owns the lifecycle of a connection to an external
// wallet provider: establishing it, tearing it down, and tracking the
// account and chain the wallet reports.
package connector

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/event"
	"github.com/rs/zerolog"

	"github.com/layer-3/rangda/core"
	"github.com/layer-3/rangda/ports"
)

// Connector drives a single wallet provider and exposes a stable
// WalletState. Wallet failures never escape to the caller; they are logged
// and surfaced through the toast slot only, so every retry is a fresh,
// explicit Connect.
type Connector struct {
	provider ports.WalletProvider // nil when no wallet is present
	flags    FlagStore
	log      zerolog.Logger

	mu         sync.Mutex
	state      WalletState
	connecting bool

	toasts    toastSlot
	accountCh chan []string
	chainCh   chan int64
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a connector for the given provider. A nil provider is legal:
// Connect then fails through the provider-unavailable path.
func New(provider ports.WalletProvider, flags FlagStore, log zerolog.Logger) *Connector {
	return &Connector{
		provider: provider,
		flags:    flags,
		log:      log.With().Str("component", "connector").Logger(),
		done:     make(chan struct{}),
	}
}

// Start wires the passive change listeners and, if the persisted flag says
// the user was previously connected, re-establishes the connection without
// user interaction. A provider that has since gone away falls through
// Connect's normal failure path.
func (c *Connector) Start(ctx context.Context) {
	if c.provider != nil {
		c.accountCh = make(chan []string, 4)
		c.chainCh = make(chan int64, 4)
		accSub := c.provider.SubscribeAccountsChanged(c.accountCh)
		chainSub := c.provider.SubscribeChainChanged(c.chainCh)
		go c.watch(ctx, accSub, chainSub)
	}

	if c.flags.Get() {
		c.log.Debug().Msg("previously connected, reconnecting")
		c.Connect(ctx)
	}
}

// Connect requests account access and populates the wallet state. It is a
// no-op while already authenticated or while another connect is in flight:
// no state change, no toast, no provider calls. Failures leave the state
// untouched and emit an error toast.
func (c *Connector) Connect(ctx context.Context) {
	c.mu.Lock()
	if c.state.IsAuthenticated() || c.connecting {
		c.mu.Unlock()
		return
	}
	c.connecting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.connecting = false
		c.mu.Unlock()
	}()

	if c.provider == nil {
		c.log.Error().Err(core.ErrProviderUnavailable).Msg("connect failed")
		c.toasts.push(core.Toast{
			Status:      core.ToastError,
			Title:       "Error",
			Description: "No wallet provider found",
		})
		return
	}

	if _, err := c.provider.RequestAccounts(ctx); err != nil {
		c.connectFailed(err)
		return
	}

	signer, err := c.provider.GetSigner(ctx)
	if err != nil {
		c.connectFailed(err)
		return
	}

	network, err := c.provider.GetNetwork(ctx)
	if err != nil {
		c.connectFailed(err)
		return
	}

	c.apply(Connected{
		Address:  signer.Address(),
		ChainID:  network.ChainID,
		Signer:   signer,
		Provider: c.provider,
	})

	if err := c.flags.Set(); err != nil {
		c.log.Warn().Err(err).Msg("failed to persist connection flag")
	}

	c.log.Info().Str("address", signer.Address()).Int64("chain_id", network.ChainID).Msg("wallet connected")
	c.toasts.push(core.Toast{
		Status:      core.ToastSuccess,
		Title:       "Connected",
		Description: "Wallet connected successfully",
	})
}

func (c *Connector) connectFailed(err error) {
	c.log.Error().Err(err).Msg("failed to connect wallet")
	c.toasts.push(core.Toast{
		Status:      core.ToastError,
		Title:       "Error",
		Description: "Failed to connect wallet",
	})
}

// Disconnect resets the wallet state and clears the persisted flag. It has
// no precondition and always succeeds.
func (c *Connector) Disconnect() {
	c.apply(Disconnected{})

	if err := c.flags.Clear(); err != nil {
		c.log.Warn().Err(err).Msg("failed to clear connection flag")
	}

	c.log.Info().Msg("wallet disconnected")
	c.toasts.push(core.Toast{
		Status:      core.ToastInfo,
		Title:       "Disconnected",
		Description: "Wallet disconnected",
	})
}

// State returns the current wallet state.
func (c *Connector) State() WalletState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Toast returns the live toast, or nil.
func (c *Connector) Toast() *core.Toast {
	return c.toasts.get()
}

// ClearToast dismisses the live toast.
func (c *Connector) ClearToast() {
	c.toasts.clear()
}

// Close stops the change listeners. An in-flight Connect still completes or
// fails detached.
func (c *Connector) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *Connector) apply(ev Event) {
	c.mu.Lock()
	c.state = reduce(c.state, ev)
	c.mu.Unlock()
}

// watch applies provider change notifications as incremental merges. They
// may fire at any time, including mid-connect; reduce guarantees they touch
// only their own field.
func (c *Connector) watch(ctx context.Context, accSub, chainSub event.Subscription) {
	defer accSub.Unsubscribe()
	defer chainSub.Unsubscribe()

	for {
		select {
		case accounts := <-c.accountCh:
			var addr string
			if len(accounts) > 0 {
				addr = accounts[0]
			}
			c.apply(AccountChanged{Address: addr})
			c.log.Debug().Str("address", addr).Msg("account changed")
		case chainID := <-c.chainCh:
			c.apply(ChainChanged{ChainID: chainID})
			c.log.Debug().Int64("chain_id", chainID).Msg("chain changed")
		case err := <-accSub.Err():
			if err != nil {
				c.log.Warn().Err(err).Msg("accounts subscription failed")
			}
			return
		case err := <-chainSub.Err():
			if err != nil {
				c.log.Warn().Err(err).Msg("chain subscription failed")
			}
			return
		case <-ctx.Done():
			return
		case <-c.done:
			return
		}
	}
}
