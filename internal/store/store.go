package store

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"socialmedia/internal/logger"
	"socialmedia/internal/models"
)

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS account (
  account_id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT UNIQUE NOT NULL,
  password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS message (
  message_id INTEGER PRIMARY KEY AUTOINCREMENT,
  posted_by INTEGER NOT NULL,
  message_text TEXT NOT NULL,
  time_posted_epoch INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS account (
  account_id BIGSERIAL PRIMARY KEY,
  username TEXT UNIQUE NOT NULL,
  password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS message (
  message_id BIGSERIAL PRIMARY KEY,
  posted_by BIGINT NOT NULL,
  message_text TEXT NOT NULL,
  time_posted_epoch BIGINT NOT NULL
);
`

// Store executes parameterized queries for accounts and messages. It holds no
// business rules; absence of a row is always reported as sql.ErrNoRows.
type Store struct {
	db *sqlx.DB
}

// Open connects to the relational store. Supported drivers: sqlite3, postgres.
func Open(driver, dsn string) (*Store, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping health check.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Migrate creates the account and message tables (idempotent).
func (s *Store) Migrate(ctx context.Context) error {
	schema := schemaSQLite
	if s.db.DriverName() == "postgres" {
		schema = schemaPostgres
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	logger.Info("store migrated", logger.FieldKV("driver", s.db.DriverName()))
	return nil
}

func (s *Store) CreateAccount(ctx context.Context, username, password string) (*models.Account, error) {
	q := s.db.Rebind(`INSERT INTO account (username, password) VALUES (?, ?)
		RETURNING account_id, username, password`)
	var a models.Account
	if err := s.db.GetContext(ctx, &a, q, username, password); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	q := s.db.Rebind(`SELECT account_id, username, password FROM account WHERE username = ?`)
	var a models.Account
	if err := s.db.GetContext(ctx, &a, q, username); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) InsertMessage(ctx context.Context, m models.Message) (*models.Message, error) {
	q := s.db.Rebind(`INSERT INTO message (posted_by, message_text, time_posted_epoch) VALUES (?, ?, ?)
		RETURNING message_id, posted_by, message_text, time_posted_epoch`)
	var out models.Message
	if err := s.db.GetContext(ctx, &out, q, m.PostedBy, m.MessageText, m.TimePostedEpoch); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) GetMessage(ctx context.Context, id int64) (*models.Message, error) {
	q := s.db.Rebind(`SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message WHERE message_id = ?`)
	var m models.Message
	if err := s.db.GetContext(ctx, &m, q, id); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) ListMessages(ctx context.Context) ([]models.Message, error) {
	var out []models.Message
	err := s.db.SelectContext(ctx, &out, `SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message ORDER BY message_id`)
	return out, err
}

func (s *Store) ListMessagesByAccount(ctx context.Context, accountID int64) ([]models.Message, error) {
	q := s.db.Rebind(`SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message WHERE posted_by = ? ORDER BY message_id`)
	var out []models.Message
	err := s.db.SelectContext(ctx, &out, q, accountID)
	return out, err
}

// UpdateMessageText returns sql.ErrNoRows when no message has the given id.
func (s *Store) UpdateMessageText(ctx context.Context, id int64, text string) error {
	q := s.db.Rebind(`UPDATE message SET message_text = ? WHERE message_id = ?`)
	res, err := s.db.ExecContext(ctx, q, text, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	q := s.db.Rebind(`DELETE FROM message WHERE message_id = ?`)
	_, err := s.db.ExecContext(ctx, q, id)
	return err
}
