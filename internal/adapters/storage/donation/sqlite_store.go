package donation

import (
	"context"
	"database/sql"
	"fmt"

	"bloodbank/internal/adapters/storage"
	domain "bloodbank/internal/domain/donation"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new donation store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Insert persists a new Donation row.
// PRE: d has been validated and carries a freshly allocated ID
// POST: Row exists, or ErrDuplicateID on a primary-key collision
func (s *SQLiteStore) Insert(ctx context.Context, d domain.Donation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO Donation (Donation_ID, Hospital_ID, Donor_ID, Quantity, Donation_date)
		VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.HospitalID, d.DonorID, d.Quantity, d.Date.Format("2006-01-02"),
	)
	if storage.IsUniqueViolation(err, "Donation.Donation_ID") {
		return fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
	}
	return err
}

const rowSelect = `
	SELECT d.Donation_ID, don.F_name || ' ' || don.L_name, don.Blood_Group,
	       h.Name, d.Quantity, d.Donation_date
	FROM Donation d
	JOIN Donor don ON d.Donor_ID = don.Donor_ID
	JOIN Hospital h ON d.Hospital_ID = h.Hospital_ID
	ORDER BY d.Donation_date DESC`

// List retrieves all donations, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]Row, error) {
	return s.listRows(ctx, rowSelect)
}

// Recent retrieves the most recent donations.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Row, error) {
	return s.listRows(ctx, rowSelect+" LIMIT ?", limit)
}

func (s *SQLiteStore) listRows(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.ID, &r.Donor, &r.BloodGroup, &r.Hospital, &r.Quantity, &r.Date); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Count returns the total number of donations.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM Donation").Scan(&count)
	return count, err
}

// MonthlyCounts returns donation counts for the most recent months, newest first.
func (s *SQLiteStore) MonthlyCounts(ctx context.Context, months int) ([]MonthCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT strftime('%Y-%m', Donation_date) AS month, COUNT(*)
		FROM Donation GROUP BY month ORDER BY month DESC LIMIT ?`, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []MonthCount
	for rows.Next() {
		var m MonthCount
		if err := rows.Scan(&m.Month, &m.Count); err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

// QuantityByBloodGroup returns total donated millilitres per blood group.
func (s *SQLiteStore) QuantityByBloodGroup(ctx context.Context) ([]GroupQuantity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT don.Blood_Group, SUM(d.Quantity)
		FROM Donor don
		JOIN Donation d ON don.Donor_ID = d.Donor_ID
		GROUP BY don.Blood_Group
		ORDER BY don.Blood_Group`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []GroupQuantity
	for rows.Next() {
		var g GroupQuantity
		if err := rows.Scan(&g.BloodGroup, &g.Quantity); err != nil {
			return nil, err
		}
		results = append(results, g)
	}
	return results, rows.Err()
}
