package recipient

import (
	"context"
	"database/sql"
	"fmt"

	"bloodbank/internal/adapters/storage"
	domain "bloodbank/internal/domain/recipient"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new recipient store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Insert persists a new Recipient row.
// PRE: r has been validated and carries a freshly allocated ID
// POST: Row exists, or ErrDuplicateID on a primary-key collision
func (s *SQLiteStore) Insert(ctx context.Context, r domain.Recipient) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO Recipient (Recipient_ID, F_name, L_name, Address, Gender, Age, Blood_Group)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.FirstName, r.LastName, r.Address, r.Gender, r.Age, r.BloodGroup,
	)
	if storage.IsUniqueViolation(err, "Recipient.Recipient_ID") {
		return fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
	}
	return err
}

// InsertContact persists a recipient contact child row.
func (s *SQLiteStore) InsertContact(ctx context.Context, c domain.Contact) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO Recipient_Contact (Recipient_ID, Contact) VALUES (?, ?)",
		c.RecipientID, c.Contact,
	)
	return err
}

// List retrieves all recipients with aggregated contacts.
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.Recipient_ID, r.F_name || ' ' || r.L_name, r.Gender, r.Age, r.Blood_Group,
		       COALESCE(r.Address, ''), COALESCE(GROUP_CONCAT(rc.Contact), '')
		FROM Recipient r
		LEFT JOIN Recipient_Contact rc ON r.Recipient_ID = rc.Recipient_ID
		GROUP BY r.Recipient_ID
		ORDER BY r.Recipient_ID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Summary
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.ID, &sm.Name, &sm.Gender, &sm.Age, &sm.BloodGroup, &sm.Address, &sm.Contacts); err != nil {
			return nil, err
		}
		results = append(results, sm)
	}
	return results, rows.Err()
}

// ListLookup retrieves id/name rows for pick-lists, ordered by first name.
func (s *SQLiteStore) ListLookup(ctx context.Context) ([]Lookup, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT Recipient_ID, F_name, L_name FROM Recipient ORDER BY F_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Lookup
	for rows.Next() {
		var l Lookup
		if err := rows.Scan(&l.ID, &l.FirstName, &l.LastName); err != nil {
			return nil, err
		}
		results = append(results, l)
	}
	return results, rows.Err()
}

// Count returns the total number of recipients.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM Recipient").Scan(&count)
	return count, err
}

// ListAges returns all recipient ages for distribution charts.
func (s *SQLiteStore) ListAges(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT Age FROM Recipient")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ages []int
	for rows.Next() {
		var a int
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		ages = append(ages, a)
	}
	return ages, rows.Err()
}
