package service

import (
	"context"
	"database/sql"
	"errors"

	"socialmedia/internal/models"
)

// MaxMessageLen is the upper bound on message_text for any persisted message.
const MaxMessageLen = 255

type MessageRepo interface {
	InsertMessage(ctx context.Context, m models.Message) (*models.Message, error)
	GetMessage(ctx context.Context, id int64) (*models.Message, error)
	ListMessages(ctx context.Context) ([]models.Message, error)
	ListMessagesByAccount(ctx context.Context, accountID int64) ([]models.Message, error)
	UpdateMessageText(ctx context.Context, id int64, text string) error
	DeleteMessage(ctx context.Context, id int64) error
}

// Messages implements message CRUD on top of a MessageRepo.
type Messages struct{ repo MessageRepo }

func NewMessages(r MessageRepo) *Messages { return &Messages{repo: r} }

func validText(text string) bool {
	return len(text) > 0 && len(text) <= MaxMessageLen
}

// Create persists a new message. posted_by is accepted as given; there is no
// check that the account exists.
func (s *Messages) Create(ctx context.Context, m models.Message) (*models.Message, error) {
	if !validText(m.MessageText) {
		return nil, ErrInvalidInput
	}
	return s.repo.InsertMessage(ctx, m)
}

// Get returns (nil, nil) when no message has the given id; absence is not an
// error for retrieval.
func (s *Messages) Get(ctx context.Context, id int64) (*models.Message, error) {
	m, err := s.repo.GetMessage(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Messages) List(ctx context.Context) ([]models.Message, error) {
	list, err := s.repo.ListMessages(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Message{}
	}
	return list, nil
}

func (s *Messages) ListByAccount(ctx context.Context, accountID int64) ([]models.Message, error) {
	list, err := s.repo.ListMessagesByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Message{}
	}
	return list, nil
}

// Update replaces message_text in place and returns the updated message.
// Unlike Get and Delete, a missing id here is a hard error.
func (s *Messages) Update(ctx context.Context, id int64, text string) (*models.Message, error) {
	if !validText(text) {
		return nil, ErrInvalidInput
	}
	if err := s.repo.UpdateMessageText(ctx, id, text); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return s.repo.GetMessage(ctx, id)
}

// Delete removes the message and returns its pre-deletion state, or
// (nil, nil) when nothing had that id.
func (s *Messages) Delete(ctx context.Context, id int64) (*models.Message, error) {
	m, err := s.repo.GetMessage(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteMessage(ctx, id); err != nil {
		return nil, err
	}
	return m, nil
}
