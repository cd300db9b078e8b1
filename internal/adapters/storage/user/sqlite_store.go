package user

import (
	"context"
	"database/sql"
	"fmt"

	"bloodbank/internal/adapters/storage"
	domain "bloodbank/internal/domain/user"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new user store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// InsertLogin persists a new User_Login row.
// PRE: l has been validated, PasswordHash is set
// POST: Row exists, ErrUsernameTaken on a username conflict, ErrDuplicateID
// on a primary-key collision. Uniqueness is enforced by the datastore, not a
// pre-check, so there is no check-then-insert race window.
func (s *SQLiteStore) InsertLogin(ctx context.Context, l domain.Login) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO User_Login (User_ID, Username, Password, Hospital_ID) VALUES (?, ?, ?, ?)",
		l.ID, l.Username, l.PasswordHash, l.HospitalID,
	)
	if storage.IsUniqueViolation(err, "User_Login.Username") {
		return fmt.Errorf("%w: %s", ErrUsernameTaken, l.Username)
	}
	if storage.IsUniqueViolation(err, "User_Login.User_ID") {
		return fmt.Errorf("%w: %s", ErrDuplicateID, l.ID)
	}
	return err
}

// InsertContact persists a user contact child row.
func (s *SQLiteStore) InsertContact(ctx context.Context, c domain.Contact) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO User_Contact (User_ID, Contact) VALUES (?, ?)",
		c.UserID, c.Contact,
	)
	return err
}

// InsertEmail persists a user email child row.
func (s *SQLiteStore) InsertEmail(ctx context.Context, e domain.Email) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO User_Email (User_ID, Email) VALUES (?, ?)",
		e.UserID, e.Email,
	)
	return err
}

// GetByID retrieves a Login by its identifier.
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Login, error) {
	return s.get(ctx, "SELECT User_ID, Username, Password, Hospital_ID FROM User_Login WHERE User_ID = ?", id)
}

// GetByUsername retrieves a Login by username.
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (domain.Login, error) {
	return s.get(ctx, "SELECT User_ID, Username, Password, Hospital_ID FROM User_Login WHERE Username = ?", username)
}

func (s *SQLiteStore) get(ctx context.Context, query, arg string) (domain.Login, error) {
	var l domain.Login
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&l.ID, &l.Username, &l.PasswordHash, &l.HospitalID)
	if err == sql.ErrNoRows {
		return domain.Login{}, fmt.Errorf("user not found: %w", err)
	}
	return l, err
}

// DeleteContacts removes all contact child rows for a user.
func (s *SQLiteStore) DeleteContacts(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM User_Contact WHERE User_ID = ?", userID)
	return err
}

// DeleteEmails removes all email child rows for a user.
func (s *SQLiteStore) DeleteEmails(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM User_Email WHERE User_ID = ?", userID)
	return err
}

// DeleteLogin removes the User_Login row itself.
// POST: The login no longer exists; associated Hospital rows are untouched
func (s *SQLiteStore) DeleteLogin(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM User_Login WHERE User_ID = ?", userID)
	return err
}
