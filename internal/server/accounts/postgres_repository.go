package accounts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prestoapp/presto-server/internal/common"
	"github.com/prestoapp/presto-server/internal/dbx"
)

// PostgresRepository stores accounts in a single table with the document
// kept as raw JSON text, so it round-trips byte-for-byte.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	query :=
		`SELECT email, password, name, store_data, created_at FROM accounts
		 WHERE email = $1
		 `

	account := &Account{}
	var store []byte
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&account.Email, &account.Password, &account.Name, &store, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	account.Store = json.RawMessage(store)
	return account, nil
}

func (r *PostgresRepository) Create(ctx context.Context, account *Account) error {
	query :=
		`INSERT INTO accounts (email, password, name, store_data)
         VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.Email, account.Password, account.Name, []byte(account.Store)).
		Scan(&account.CreatedAt)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) UpdateStore(ctx context.Context, email string, store json.RawMessage) error {
	query :=
		`UPDATE accounts SET store_data = $2
		 WHERE email = $1
		 `

	res, err := r.db.ExecContext(ctx, query, email, []byte(store))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
