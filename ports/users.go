package ports

import (
	"context"

	"github.com/layer-3/rangda/core"
)

// UserStore is the external account datastore. It enforces uniqueness on
// the eth wallet address; both lookups return (nil, nil) when no record
// matches.
type UserStore interface {
	FindByEthAddress(ctx context.Context, address string) (*core.User, error)
	FindByID(ctx context.Context, id string) (*core.User, error)
}
