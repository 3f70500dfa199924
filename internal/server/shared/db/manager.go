// Package db selects and wires a storage backend for the account
// repository: Postgres (with goose migrations), an embedded Bolt file, or
// a process-local map for throwaway servers and tests.
package db

import (
	"context"

	"github.com/prestoapp/presto-server/internal/server/accounts"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Close() error
	Accounts() accounts.Repository
}
