package user

import (
	"context"
	"errors"

	"bloodbank/internal/adapters/storage"
	domain "bloodbank/internal/domain/user"
)

// Store errors. ErrDuplicateID signals an identifier-allocation race and is
// retryable with a fresh ID; ErrUsernameTaken is a user-facing conflict and
// is never retried.
var (
	ErrDuplicateID   = storage.ErrDuplicateID
	ErrUsernameTaken = errors.New("username already exists")
)

// Store persists User_Login state and its contact/email child rows.
type Store interface {
	InsertLogin(ctx context.Context, l domain.Login) error
	InsertContact(ctx context.Context, c domain.Contact) error
	InsertEmail(ctx context.Context, e domain.Email) error
	GetByID(ctx context.Context, id string) (domain.Login, error)
	GetByUsername(ctx context.Context, username string) (domain.Login, error)
	DeleteContacts(ctx context.Context, userID string) error
	DeleteEmails(ctx context.Context, userID string) error
	DeleteLogin(ctx context.Context, userID string) error
}
