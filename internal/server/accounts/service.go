package accounts

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/prestoapp/presto-server/internal/common"
	"github.com/prestoapp/presto-server/internal/server/auth"
	"github.com/prestoapp/presto-server/internal/server/gate"
)

// Service implements the account operations: login, register, logout and
// the per-account store document read/replace. Every operation runs its
// whole body inside the gate, so within one process they execute in strict
// submission order. That total order is what keeps the check-then-insert
// in Register and the read-modify-write cycles of API consumers safe.
type Service struct {
	repo      Repository
	gate      *gate.Gate
	jwtSecret []byte
}

func NewService(repo Repository, jwtSecret []byte) *Service {
	return &Service{
		repo:      repo,
		gate:      gate.New(),
		jwtSecret: jwtSecret,
	}
}

func (s *Service) passwordMatches(stored, candidate string) bool {
	// Exact byte equality, compared in constant time.
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// Login checks the credentials and issues a bearer token. A missing account
// and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	var token string

	err := s.gate.Do(ctx, func(ctx context.Context) error {
		account, err := s.repo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidCredentials
			}
			return fmt.Errorf("account lookup: %w", err)
		}

		if !s.passwordMatches(account.Password, password) {
			return common.ErrInvalidCredentials
		}

		token, err = auth.IssueToken(email, s.jwtSecret)
		return err
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

// Register creates the account with an empty store document and issues a
// token. The existence check and the insert run as one gated task, so two
// concurrent registrations for the same email cannot both pass the check.
func (s *Service) Register(ctx context.Context, email, password, name string) (string, error) {
	var token string

	err := s.gate.Do(ctx, func(ctx context.Context) error {
		_, err := s.repo.FindByEmail(ctx, email)
		if err == nil {
			return common.ErrDuplicateAccount
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("account lookup: %w", err)
		}

		account := &Account{
			Email:    email,
			Password: password,
			Name:     name,
			Store:    EmptyStore,
		}
		if err := s.repo.Create(ctx, account); err != nil {
			return fmt.Errorf("account create: %w", err)
		}

		token, err = auth.IssueToken(email, s.jwtSecret)
		return err
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

// Logout mutates nothing and does not invalidate the token; it only takes
// its turn in the gate so a logout cannot interleave mid-write with a
// concurrent store update.
func (s *Service) Logout(ctx context.Context, email string) error {
	return s.gate.Do(ctx, func(ctx context.Context) error {
		return nil
	})
}

// GetStore returns the account's document verbatim.
func (s *Service) GetStore(ctx context.Context, email string) (json.RawMessage, error) {
	var store json.RawMessage

	err := s.gate.Do(ctx, func(ctx context.Context) error {
		account, err := s.repo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrAccountNotFound
			}
			return fmt.Errorf("account lookup: %w", err)
		}

		store = account.Store
		if len(store) == 0 {
			store = EmptyStore
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// SetStore replaces the account's document wholesale. The new value is not
// merged with the old one and its shape is not validated.
func (s *Service) SetStore(ctx context.Context, email string, store json.RawMessage) error {
	return s.gate.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateStore(ctx, email, store); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrAccountNotFound
			}
			return fmt.Errorf("store update: %w", err)
		}
		return nil
	})
}

// Authenticate resolves an Authorization header to the account email it is
// bound to: it strips the Bearer prefix, verifies the token signature and
// confirms the account still exists. Every failure folds into
// common.ErrInvalidToken. Runs outside the gate: it is a pure read and
// must not queue behind mutations.
func (s *Service) Authenticate(ctx context.Context, authorization string) (string, error) {
	token := strings.TrimPrefix(authorization, "Bearer ")

	email, err := auth.EmailFromToken(token, s.jwtSecret)
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if _, err := s.repo.FindByEmail(ctx, email); err != nil {
		return "", common.ErrInvalidToken
	}

	return email, nil
}
