package identifier

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	_ "modernc.org/sqlite"

	"bloodbank/internal/adapters/storage"
	domain "bloodbank/internal/domain/identifier"
)

// openTestDB creates an in-memory SQLite database with the full schema.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// A second pool connection would see a fresh in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return db
}

func insertHospital(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec("INSERT INTO Hospital (Hospital_ID, Name, Address) VALUES (?, ?, ?)", id, "Test Hospital "+id, "1 Test St")
	if err != nil {
		t.Fatalf("failed to insert hospital %s: %v", id, err)
	}
}

// TestNextID_EmptyTable tests allocation against a table with no rows.
func TestNextID_EmptyTable(t *testing.T) {
	db := openTestDB(t)
	alloc := NewSQLiteAllocator(db)

	got, err := alloc.NextID(context.Background(), "H", "Hospital", "Hospital_ID")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "H0001" {
		t.Errorf("got %q, want H0001", got)
	}
}

// TestNextID_Increments tests allocation past existing rows.
func TestNextID_Increments(t *testing.T) {
	db := openTestDB(t)
	alloc := NewSQLiteAllocator(db)

	insertHospital(t, db, "H0001")
	insertHospital(t, db, "H0007")
	insertHospital(t, db, "H0003")

	got, err := alloc.NextID(context.Background(), "H", "Hospital", "Hospital_ID")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "H0008" {
		t.Errorf("got %q, want H0008", got)
	}
}

// TestNextID_IgnoresMalformedRows tests that legacy rows with non-numeric
// suffixes do not break allocation.
func TestNextID_IgnoresMalformedRows(t *testing.T) {
	db := openTestDB(t)
	alloc := NewSQLiteAllocator(db)

	insertHospital(t, db, "H0002")
	insertHospital(t, db, "HOSP-LEGACY")

	got, err := alloc.NextID(context.Background(), "H", "Hospital", "Hospital_ID")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "H0003" {
		t.Errorf("got %q, want H0003", got)
	}
}

// TestNextID_Idempotent tests that NextID performs no writes.
func TestNextID_Idempotent(t *testing.T) {
	db := openTestDB(t)
	alloc := NewSQLiteAllocator(db)
	insertHospital(t, db, "H0004")

	first, err := alloc.NextID(context.Background(), "H", "Hospital", "Hospital_ID")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := alloc.NextID(context.Background(), "H", "Hospital", "Hospital_ID")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("NextID wrote state: %q vs %q", first, second)
	}
}

// TestNextID_Overflow tests the exhausted digit budget.
func TestNextID_Overflow(t *testing.T) {
	db := openTestDB(t)
	alloc := NewSQLiteAllocator(db)
	insertHospital(t, db, "H9999")

	_, err := alloc.NextID(context.Background(), "H", "Hospital", "Hospital_ID")
	if !errors.Is(err, domain.ErrOverflow) {
		t.Errorf("expected ErrOverflow, got %v", err)
	}
}

// TestNextID_InvalidArguments tests prefix/table/column validation.
func TestNextID_InvalidArguments(t *testing.T) {
	db := openTestDB(t)
	alloc := NewSQLiteAllocator(db)

	if _, err := alloc.NextID(context.Background(), "h1", "Hospital", "Hospital_ID"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for bad prefix, got %v", err)
	}
	if _, err := alloc.NextID(context.Background(), "H", "Hospital; DROP TABLE Hospital", "Hospital_ID"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for bad table, got %v", err)
	}
	if _, err := alloc.NextID(context.Background(), "H", "Hospital", "1col"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for bad column, got %v", err)
	}
}

// TestNextID_ConcurrentAllocation tests that goroutines racing through the
// allocate-then-insert window end up with distinct identifiers once duplicate
// inserts are rejected by the primary key and re-allocated.
func TestNextID_ConcurrentAllocation(t *testing.T) {
	db := openTestDB(t)
	alloc := NewSQLiteAllocator(db)

	const workers = 8
	ids := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				id, err := alloc.NextID(context.Background(), "H", "Hospital", "Hospital_ID")
				if err != nil {
					t.Errorf("allocation failed: %v", err)
					return
				}
				_, err = db.Exec("INSERT INTO Hospital (Hospital_ID, Name, Address) VALUES (?, ?, ?)",
					id, "Hospital "+id, "1 Test St")
				if storage.IsUniqueViolation(err, "Hospital.Hospital_ID") {
					continue
				}
				if err != nil {
					t.Errorf("insert failed: %v", err)
					return
				}
				ids <- id
				return
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("identifier %s committed twice", id)
		}
		seen[id] = true
	}
	if len(seen) != workers {
		t.Errorf("expected %d distinct identifiers, got %d", workers, len(seen))
	}
}

// TestNextID_StoreUnavailable tests error propagation from a closed store.
func TestNextID_StoreUnavailable(t *testing.T) {
	db := openTestDB(t)
	alloc := NewSQLiteAllocator(db)
	db.Close()

	if _, err := alloc.NextID(context.Background(), "H", "Hospital", "Hospital_ID"); err == nil {
		t.Error("expected error from closed store")
	}
}
