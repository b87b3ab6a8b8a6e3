// Package users provides implementations of the user datastore port.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/layer-3/rangda/core"
	"github.com/layer-3/rangda/ports"
)

// UserModel is the persisted account row. The eth address is unique: a
// wallet maps to at most one account.
type UserModel struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID             string  `bun:"id,pk"`
	Name           *string `bun:"name"`
	Image          *string `bun:"image"`
	EthAddress     *string `bun:"eth_address,unique"`
	BtcAddress     *string `bun:"btc_address"`
	WalletChainID  *string `bun:"wallet_chain_id"`
	WalletProvider *string `bun:"wallet_provider"`
	Role           *int    `bun:"role"`
}

// BunStore implements the UserStore port on a bun database.
type BunStore struct {
	db *bun.DB
}

// OpenDB opens a sqlite-backed bun database for the given DSN.
func OpenDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// NewBunStore creates a bun-backed user store.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

// Migrate creates the users table if it does not exist.
func (s *BunStore) Migrate(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*UserModel)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

// FindByEthAddress looks up an account by exact eth address match.
func (s *BunStore) FindByEthAddress(ctx context.Context, address string) (*core.User, error) {
	var m UserModel
	err := s.db.NewSelect().
		Model(&m).
		Where("u.eth_address = ?", address).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by eth address: %w", err)
	}
	return m.toUser(), nil
}

// FindByID looks up an account by id.
func (s *BunStore) FindByID(ctx context.Context, id string) (*core.User, error) {
	var m UserModel
	err := s.db.NewSelect().
		Model(&m).
		Where("u.id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by id: %w", err)
	}
	return m.toUser(), nil
}

func (m *UserModel) toUser() *core.User {
	return &core.User{
		ID:               m.ID,
		Name:             m.Name,
		Image:            m.Image,
		EthWalletAddress: m.EthAddress,
		BtcWalletAddress: m.BtcAddress,
		WalletChainID:    m.WalletChainID,
		WalletProvider:   m.WalletProvider,
		Role:             m.Role,
	}
}

var _ ports.UserStore = (*BunStore)(nil)
