package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/prestoapp/presto-server/internal/common"
)

// InMemoryRepository keeps accounts in a process-local map. Used by tests
// and by the "memory" backend for throwaway development servers; nothing
// survives a restart.
type InMemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]*Account
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{accounts: make(map[string]*Account)}
}

// clone copies the account so callers cannot alias map-owned state.
func clone(a *Account) *Account {
	c := *a
	c.Store = append(json.RawMessage(nil), a.Store...)
	return &c
}

func (r *InMemoryRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(account), nil
}

func (r *InMemoryRepository) Create(ctx context.Context, account *Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.Email]; ok {
		return fmt.Errorf("account %q already exists", account.Email)
	}

	account.CreatedAt = time.Now()
	r.accounts[account.Email] = clone(account)
	return nil
}

func (r *InMemoryRepository) UpdateStore(ctx context.Context, email string, store json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[email]
	if !ok {
		return common.ErrorNotFound
	}

	account.Store = append(json.RawMessage(nil), store...)
	return nil
}
