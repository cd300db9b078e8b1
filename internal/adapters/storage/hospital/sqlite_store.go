package hospital

import (
	"context"
	"database/sql"
	"fmt"

	"bloodbank/internal/adapters/storage"
	domain "bloodbank/internal/domain/hospital"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new hospital store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Insert persists a new Hospital row.
// PRE: h has been validated and carries a freshly allocated ID
// POST: Row exists, or ErrDuplicateID on a primary-key collision
func (s *SQLiteStore) Insert(ctx context.Context, h domain.Hospital) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO Hospital (Hospital_ID, Name, Address) VALUES (?, ?, ?)",
		h.ID, h.Name, h.Address,
	)
	if storage.IsUniqueViolation(err, "Hospital.Hospital_ID") {
		return fmt.Errorf("%w: %s", ErrDuplicateID, h.ID)
	}
	return err
}

// InsertContact persists a hospital contact child row.
// PRE: c.HospitalID references an existing hospital
func (s *SQLiteStore) InsertContact(ctx context.Context, c domain.Contact) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO Hospital_Contact (Hospital_ID, Contact) VALUES (?, ?)",
		c.HospitalID, c.Contact,
	)
	return err
}

// InsertEmail persists a hospital email child row.
// PRE: e.HospitalID references an existing hospital
func (s *SQLiteStore) InsertEmail(ctx context.Context, e domain.Email) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO Hospital_Email (Hospital_ID, Email) VALUES (?, ?)",
		e.HospitalID, e.Email,
	)
	return err
}

// GetByID retrieves a Hospital by its identifier.
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Hospital, error) {
	var h domain.Hospital
	err := s.db.QueryRowContext(ctx,
		"SELECT Hospital_ID, Name, Address FROM Hospital WHERE Hospital_ID = ?", id,
	).Scan(&h.ID, &h.Name, &h.Address)
	if err == sql.ErrNoRows {
		return domain.Hospital{}, fmt.Errorf("hospital not found: %w", err)
	}
	return h, err
}

// List retrieves all hospitals with aggregated contacts and emails.
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT h.Hospital_ID, h.Name, h.Address,
		       COALESCE(GROUP_CONCAT(DISTINCT hc.Contact), ''),
		       COALESCE(GROUP_CONCAT(DISTINCT he.Email), '')
		FROM Hospital h
		LEFT JOIN Hospital_Contact hc ON h.Hospital_ID = hc.Hospital_ID
		LEFT JOIN Hospital_Email he ON h.Hospital_ID = he.Hospital_ID
		GROUP BY h.Hospital_ID
		ORDER BY h.Name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Summary
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.ID, &sm.Name, &sm.Address, &sm.Contacts, &sm.Emails); err != nil {
			return nil, err
		}
		results = append(results, sm)
	}
	return results, rows.Err()
}

// ListLookup retrieves id/name pairs for pick-lists, ordered by name.
func (s *SQLiteStore) ListLookup(ctx context.Context) ([]Lookup, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT Hospital_ID, Name FROM Hospital ORDER BY Name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Lookup
	for rows.Next() {
		var l Lookup
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		results = append(results, l)
	}
	return results, rows.Err()
}

// ListActivity aggregates donation and request counts per hospital.
func (s *SQLiteStore) ListActivity(ctx context.Context) ([]Activity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT h.Name,
		       COUNT(DISTINCT d.Donation_ID),
		       COUNT(DISTINCT r.Request_ID)
		FROM Hospital h
		LEFT JOIN Donation d ON h.Hospital_ID = d.Hospital_ID
		LEFT JOIN Request r ON h.Hospital_ID = r.Hospital_ID
		GROUP BY h.Name
		ORDER BY COUNT(DISTINCT d.Donation_ID) DESC, COUNT(DISTINCT r.Request_ID) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.Name, &a.Donations, &a.Requests); err != nil {
			return nil, err
		}
		results = append(results, a)
	}
	return results, rows.Err()
}
