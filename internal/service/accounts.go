package service

import (
	"context"
	"database/sql"
	"errors"

	"socialmedia/internal/models"
)

type AccountRepo interface {
	CreateAccount(ctx context.Context, username, password string) (*models.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
}

// Accounts implements registration and login. It keeps no state between
// calls; the repo is the single source of truth.
type Accounts struct{ repo AccountRepo }

func NewAccounts(r AccountRepo) *Accounts { return &Accounts{repo: r} }

// Register creates a new account and returns it with its generated id.
func (s *Accounts) Register(ctx context.Context, username, password string) (*models.Account, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}
	_, err := s.repo.GetAccountByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return s.repo.CreateAccount(ctx, username, password)
}

// Login returns the matching account, or ErrInvalidCredentials when the
// username is unknown or the stored password differs.
func (s *Accounts) Login(ctx context.Context, username, password string) (*models.Account, error) {
	a, err := s.repo.GetAccountByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if a.Password != password {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}
