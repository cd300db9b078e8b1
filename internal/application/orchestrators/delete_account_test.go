package orchestrators

import (
	"context"
	"errors"
	"testing"

	"bloodbank/internal/domain/audit"
	"bloodbank/internal/domain/user"
)

func seededUserStore() *mockUserStore {
	m := newMockUserStore(&idRegistry{})
	m.logins["U0001"] = user.Login{ID: "U0001", Username: "citygeneral", HospitalID: "H0001"}
	m.contacts = []user.Contact{{UserID: "U0001", Contact: "0211234567"}}
	m.emails = []user.Email{{UserID: "U0001", Email: "pat@citygeneral.example"}}
	return m
}

// TestExecuteDeleteAccount_Valid tests a confirmed deletion removes the
// login and its child rows.
func TestExecuteDeleteAccount_Valid(t *testing.T) {
	store := seededUserStore()
	aStore := &mockAuditStore{}

	err := ExecuteDeleteAccount(context.Background(), DeleteAccountInput{
		UserID:    "U0001",
		Confirmed: true,
	}, DeleteAccountDeps{UserStore: store, AuditStore: aStore})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.logins["U0001"]; ok {
		t.Error("expected login row removed")
	}
	if len(store.contacts) != 0 || len(store.emails) != 0 {
		t.Error("expected contact and email child rows removed")
	}
	if len(aStore.events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(aStore.events))
	}
	if aStore.events[0].Action != audit.ActionDelete {
		t.Errorf("expected delete audit action, got %s", aStore.events[0].Action)
	}
}

// TestExecuteDeleteAccount_NotConfirmed tests that the confirmation gate
// blocks everything.
func TestExecuteDeleteAccount_NotConfirmed(t *testing.T) {
	store := seededUserStore()

	err := ExecuteDeleteAccount(context.Background(), DeleteAccountInput{
		UserID:    "U0001",
		Confirmed: false,
	}, DeleteAccountDeps{UserStore: store})
	if !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if _, ok := store.logins["U0001"]; !ok {
		t.Error("unconfirmed deletion must not touch the login")
	}
	if len(store.contacts) != 1 || len(store.emails) != 1 {
		t.Error("unconfirmed deletion must not touch child rows")
	}
}

// TestExecuteDeleteAccount_EmptyUserID tests input validation.
func TestExecuteDeleteAccount_EmptyUserID(t *testing.T) {
	err := ExecuteDeleteAccount(context.Background(), DeleteAccountInput{
		Confirmed: true,
	}, DeleteAccountDeps{UserStore: seededUserStore()})
	if !errors.Is(err, ErrEmptyUserID) {
		t.Fatalf("expected ErrEmptyUserID, got %v", err)
	}
}

// TestExecuteDeleteAccount_ChildDeleteFailureAccepted tests that a failed
// contact delete is audited but does not block the login delete.
func TestExecuteDeleteAccount_ChildDeleteFailureAccepted(t *testing.T) {
	store := seededUserStore()
	store.deleteErrs = map[string]error{"contacts": errors.New("table locked")}
	aStore := &mockAuditStore{}

	err := ExecuteDeleteAccount(context.Background(), DeleteAccountInput{
		UserID:    "U0001",
		Confirmed: true,
	}, DeleteAccountDeps{UserStore: store, AuditStore: aStore})
	if err != nil {
		t.Fatalf("child delete failure must not fail the operation: %v", err)
	}
	if _, ok := store.logins["U0001"]; ok {
		t.Error("expected login row removed despite child failure")
	}
	if len(aStore.warnings()) != 1 {
		t.Errorf("expected 1 warning audit event, got %d", len(aStore.warnings()))
	}
}

// TestExecuteDeleteAccount_LoginDeleteFailure tests that a failed login
// delete fails the whole operation.
func TestExecuteDeleteAccount_LoginDeleteFailure(t *testing.T) {
	store := seededUserStore()
	store.deleteErrs = map[string]error{"login": errors.New("database gone")}

	err := ExecuteDeleteAccount(context.Background(), DeleteAccountInput{
		UserID:    "U0001",
		Confirmed: true,
	}, DeleteAccountDeps{UserStore: store})
	if err == nil {
		t.Fatal("expected error when login delete fails")
	}
	if _, ok := store.logins["U0001"]; !ok {
		t.Error("login must still exist after failed delete")
	}
}
