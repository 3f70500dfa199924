package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"github.com/prestoapp/presto-server/internal/common"
)

var accountsBucket = []byte("Accounts")

// BoltRepository stores accounts in a single-file embedded database: one
// bucket, keyed by email, values JSON-marshalled. Suits single-process
// deployments that do not want to run Postgres.
type BoltRepository struct {
	db *bolt.DB
}

// boltAccount is the on-disk value; the email lives in the key.
type boltAccount struct {
	Password  string          `json:"password"`
	Name      string          `json:"name"`
	Store     json.RawMessage `json:"store"`
	CreatedAt time.Time       `json:"created_at"`
}

func NewBoltRepository(db *bolt.DB) (*BoltRepository, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(accountsBucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("bucket init error: %w", err)
	}

	return &BoltRepository{db: db}, nil
}

func (r *BoltRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	var account *Account

	err := r.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(accountsBucket).Get([]byte(email))
		if raw == nil {
			return common.ErrorNotFound
		}

		var stored boltAccount
		if err := json.Unmarshal(raw, &stored); err != nil {
			return fmt.Errorf("cannot parse account: %w", err)
		}

		account = &Account{
			Email:     email,
			Password:  stored.Password,
			Name:      stored.Name,
			Store:     stored.Store,
			CreatedAt: stored.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (r *BoltRepository) Create(ctx context.Context, account *Account) error {
	account.CreatedAt = time.Now()

	return r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(accountsBucket)

		if bucket.Get([]byte(account.Email)) != nil {
			return fmt.Errorf("account %q already exists", account.Email)
		}

		raw, err := json.Marshal(boltAccount{
			Password:  account.Password,
			Name:      account.Name,
			Store:     account.Store,
			CreatedAt: account.CreatedAt,
		})
		if err != nil {
			return err
		}

		return bucket.Put([]byte(account.Email), raw)
	})
}

func (r *BoltRepository) UpdateStore(ctx context.Context, email string, store json.RawMessage) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(accountsBucket)

		raw := bucket.Get([]byte(email))
		if raw == nil {
			return common.ErrorNotFound
		}

		var stored boltAccount
		if err := json.Unmarshal(raw, &stored); err != nil {
			return fmt.Errorf("cannot parse account: %w", err)
		}

		stored.Store = store

		updated, err := json.Marshal(stored)
		if err != nil {
			return err
		}

		return bucket.Put([]byte(email), updated)
	})
}
