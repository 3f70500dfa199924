package db

import (
	"context"

	"github.com/prestoapp/presto-server/internal/server/accounts"
)

type InMemoryRepositoryManager struct {
	accounts accounts.Repository
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}

func (m *InMemoryRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{accounts: accounts.NewInMemoryRepository()}
}
