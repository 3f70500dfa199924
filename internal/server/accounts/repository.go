package accounts

import (
	"context"
	"encoding/json"
)

// Repository is the credential-store contract: single-key point operations
// against the account collection. Implementations only guarantee that each
// call is atomic for its one key; cross-call atomicity (check-then-insert,
// read-modify-write) is supplied by the Serialization Gate in Service.
type Repository interface {
	// FindByEmail returns the account or common.ErrorNotFound.
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// Create inserts a new account. The email must not already exist.
	Create(ctx context.Context, account *Account) error

	// UpdateStore replaces the account's document wholesale. Returns
	// common.ErrorNotFound when no account has this email.
	UpdateStore(ctx context.Context, email string, store json.RawMessage) error
}
