package connector

import "github.com/layer-3/rangda/ports"

// WalletState is the connector's view of the wallet connection. It is an
// immutable value; every change goes through reduce so the fields can only
// transition together.
type WalletState struct {
	Address  string
	ChainID  int64
	Signer   ports.Signer
	Provider ports.WalletProvider
}

// IsAuthenticated is derived, never set: true exactly when the address,
// chain id and provider handle are all present.
func (s WalletState) IsAuthenticated() bool {
	return s.Address != "" && s.ChainID != 0 && s.Provider != nil
}

// Event is a named transition over WalletState.
type Event interface {
	isEvent()
}

// Connected establishes a full connection: all four fields at once.
type Connected struct {
	Address  string
	ChainID  int64
	Signer   ports.Signer
	Provider ports.WalletProvider
}

// Disconnected tears the connection down: all four fields absent at once.
type Disconnected struct{}

// AccountChanged is an incremental correction to an established connection:
// the wallet switched accounts, or lost them all (empty address).
type AccountChanged struct {
	Address string
}

// ChainChanged is an incremental correction: the wallet switched networks.
type ChainChanged struct {
	ChainID int64
}

func (Connected) isEvent()      {}
func (Disconnected) isEvent()   {}
func (AccountChanged) isEvent() {}
func (ChainChanged) isEvent()   {}

// reduce applies a transition to a state. Connected and Disconnected replace
// the whole value; the change events touch exactly one field, so a
// notification firing mid-connect cannot clobber the other fields.
func reduce(s WalletState, ev Event) WalletState {
	switch e := ev.(type) {
	case Connected:
		return WalletState{
			Address:  e.Address,
			ChainID:  e.ChainID,
			Signer:   e.Signer,
			Provider: e.Provider,
		}
	case Disconnected:
		return WalletState{}
	case AccountChanged:
		s.Address = e.Address
		return s
	case ChainChanged:
		s.ChainID = e.ChainID
		return s
	}
	return s
}
