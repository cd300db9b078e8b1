package request

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bloodbank/internal/adapters/storage"
	domain "bloodbank/internal/domain/request"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new request store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Insert persists a new Request row.
// PRE: r has been validated and carries a freshly allocated ID
// POST: Row exists, or ErrDuplicateID on a primary-key collision
func (s *SQLiteStore) Insert(ctx context.Context, r domain.Request) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO Request (Request_ID, Hospital_ID, Recipient_ID, Status, Quantity, Blood_Group, Request_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.HospitalID, r.RecipientID, r.Status, r.Quantity, r.BloodGroup,
		r.Date.Format("2006-01-02"),
	)
	if storage.IsUniqueViolation(err, "Request.Request_ID") {
		return fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
	}
	return err
}

// GetByID retrieves a Request by identifier.
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Request, error) {
	var r domain.Request
	var date string
	err := s.db.QueryRowContext(ctx, `
		SELECT Request_ID, Hospital_ID, Recipient_ID, Status, Quantity, Blood_Group, Request_date
		FROM Request WHERE Request_ID = ?`, id,
	).Scan(&r.ID, &r.HospitalID, &r.RecipientID, &r.Status, &r.Quantity, &r.BloodGroup, &date)
	if err == sql.ErrNoRows {
		return domain.Request{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return domain.Request{}, err
	}
	r.Date, _ = parseDate(date)
	return r, nil
}

// Save updates an existing Request row (status transitions).
// PRE: r.ID references an existing row
func (s *SQLiteStore) Save(ctx context.Context, r domain.Request) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE Request SET Status = ?, Quantity = ?, Blood_Group = ? WHERE Request_ID = ?",
		r.Status, r.Quantity, r.BloodGroup, r.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, r.ID)
	}
	return err
}

const rowSelect = `
	SELECT r.Request_ID, rec.F_name || ' ' || rec.L_name, h.Name,
	       r.Blood_Group, r.Quantity, r.Status, r.Request_date
	FROM Request r
	JOIN Recipient rec ON r.Recipient_ID = rec.Recipient_ID
	JOIN Hospital h ON r.Hospital_ID = h.Hospital_ID
	ORDER BY r.Request_date DESC`

// List retrieves all requests, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]Row, error) {
	return s.listRows(ctx, rowSelect)
}

// Recent retrieves the most recent requests.
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
		if err := rows.Scan(&r.ID, &r.Recipient, &r.Hospital, &r.BloodGroup, &r.Quantity, &r.Status, &r.Date); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ListPendingIDs returns the identifiers of pending requests in ID order.
func (s *SQLiteStore) ListPendingIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT Request_ID FROM Request WHERE Status = ? ORDER BY Request_ID",
		domain.StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountPending returns the number of pending requests.
func (s *SQLiteStore) CountPending(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM Request WHERE Status = ?", domain.StatusPending,
	).Scan(&count)
	return count, err
}

// FulfilledByBloodGroup returns total fulfilled millilitres per blood group.
func (s *SQLiteStore) FulfilledByBloodGroup(ctx context.Context) ([]GroupQuantity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT Blood_Group, SUM(Quantity)
		FROM Request WHERE Status = ?
		GROUP BY Blood_Group ORDER BY Blood_Group`, domain.StatusFulfilled)
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

func parseDate(s string) (time.Time, error) {
	for _, f := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date: %s", s)
}
