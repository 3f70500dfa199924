package db

import (
	"context"
	"fmt"

	"github.com/boltdb/bolt"

	"github.com/prestoapp/presto-server/internal/server/accounts"
)

type BoltRepositoryManager struct {
	db       *bolt.DB
	accounts accounts.Repository
}

func (m *BoltRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func (m *BoltRepositoryManager) Close() error {
	return m.db.Close()
}

// RunMigrations is a no-op: the bucket is created on repository init.
func (m *BoltRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func NewBoltRepositoryManager(path string) (RepositoryManager, error) {

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("bolt open error: %w", err)
	}

	repo, err := accounts.NewBoltRepository(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltRepositoryManager{db: db, accounts: repo}, nil
}
