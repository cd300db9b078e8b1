package donor

import (
	"context"
	"database/sql"
	"fmt"

	"bloodbank/internal/adapters/storage"
	domain "bloodbank/internal/domain/donor"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new donor store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Insert persists a new Donor row.
// PRE: d has been validated and carries a freshly allocated ID
// POST: Row exists, or ErrDuplicateID on a primary-key collision
func (s *SQLiteStore) Insert(ctx context.Context, d domain.Donor) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO Donor (Donor_ID, F_name, L_name, Address, Gender, DOB, Age, Blood_Group)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.FirstName, d.LastName, d.Address, d.Gender,
		d.DOB.Format("2006-01-02"), d.Age, d.BloodGroup,
	)
	if storage.IsUniqueViolation(err, "Donor.Donor_ID") {
		return fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
	}
	return err
}

// InsertContact persists a donor contact child row.
func (s *SQLiteStore) InsertContact(ctx context.Context, c domain.Contact) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO Donor_Contact (Donor_ID, Contact) VALUES (?, ?)",
		c.DonorID, c.Contact,
	)
	return err
}

const summarySelect = `
	SELECT d.Donor_ID, d.F_name || ' ' || d.L_name, d.Gender, d.Age, d.Blood_Group,
	       COALESCE(d.Address, ''), COALESCE(GROUP_CONCAT(dc.Contact), '')
	FROM Donor d
	LEFT JOIN Donor_Contact dc ON d.Donor_ID = dc.Donor_ID`

// GetByID retrieves a donor summary by identifier.
// POST: Returns the row or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (Summary, error) {
	row := s.db.QueryRowContext(ctx,
		summarySelect+" WHERE d.Donor_ID = ? GROUP BY d.Donor_ID", id)
	var sm Summary
	err := row.Scan(&sm.ID, &sm.Name, &sm.Gender, &sm.Age, &sm.BloodGroup, &sm.Address, &sm.Contacts)
	if err == sql.ErrNoRows {
		return Summary{}, fmt.Errorf("donor not found: %w", err)
	}
	return sm, err
}

// List retrieves all donors with aggregated contacts.
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	return s.listSummaries(ctx, summarySelect+" GROUP BY d.Donor_ID ORDER BY d.Donor_ID")
}

// ListByBloodGroup retrieves donors matching a blood group.
func (s *SQLiteStore) ListByBloodGroup(ctx context.Context, bloodGroup string) ([]Summary, error) {
	return s.listSummaries(ctx,
		summarySelect+" WHERE d.Blood_Group = ? GROUP BY d.Donor_ID ORDER BY d.Donor_ID",
		bloodGroup)
}

func (s *SQLiteStore) listSummaries(ctx context.Context, query string, args ...any) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
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
		"SELECT Donor_ID, F_name, L_name FROM Donor ORDER BY F_name")
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

// Count returns the total number of donors.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM Donor").Scan(&count)
	return count, err
}

// CountByBloodGroup returns donor counts per blood group.
func (s *SQLiteStore) CountByBloodGroup(ctx context.Context) ([]GroupCount, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT Blood_Group, COUNT(*) FROM Donor GROUP BY Blood_Group ORDER BY Blood_Group")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []GroupCount
	for rows.Next() {
		var g GroupCount
		if err := rows.Scan(&g.BloodGroup, &g.Count); err != nil {
			return nil, err
		}
		results = append(results, g)
	}
	return results, rows.Err()
}

// ListAges returns all donor ages for distribution charts.
func (s *SQLiteStore) ListAges(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT Age FROM Donor")
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
