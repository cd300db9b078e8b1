package orchestrators

import (
	"context"
	"errors"
	"testing"

	"bloodbank/internal/domain/user"
)

func loginStoreWith(t *testing.T, username, password string) *mockUserStore {
	t.Helper()
	l := user.Login{ID: "U0001", Username: username, HospitalID: "H0001"}
	if err := l.SetPassword(password); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	store := newMockUserStore(&idRegistry{})
	store.logins[l.ID] = l
	return store
}

// TestExecuteLogin_Valid tests a correct username/password pair.
func TestExecuteLogin_Valid(t *testing.T) {
	store := loginStoreWith(t, "citygeneral", "s3cret-pass")

	res, err := ExecuteLogin(context.Background(), LoginInput{
		Username: "citygeneral",
		Password: "s3cret-pass",
	}, LoginDeps{UserStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.UserID != "U0001" {
		t.Errorf("expected UserID=U0001, got %s", res.UserID)
	}
	if res.HospitalID != "H0001" {
		t.Errorf("expected HospitalID=H0001, got %s", res.HospitalID)
	}
}

// TestExecuteLogin_WrongPassword tests rejection of a bad password.
func TestExecuteLogin_WrongPassword(t *testing.T) {
	store := loginStoreWith(t, "citygeneral", "s3cret-pass")

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Username: "citygeneral",
		Password: "wrong-pass",
	}, LoginDeps{UserStore: store})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// TestExecuteLogin_UnknownUsername tests that an unknown username yields the
// same error as a wrong password.
func TestExecuteLogin_UnknownUsername(t *testing.T) {
	store := loginStoreWith(t, "citygeneral", "s3cret-pass")

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Username: "nosuchuser",
		Password: "s3cret-pass",
	}, LoginDeps{UserStore: store})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// TestExecuteLogin_EmptyFields tests that blank credentials never reach the
// store.
func TestExecuteLogin_EmptyFields(t *testing.T) {
	_, err := ExecuteLogin(context.Background(), LoginInput{}, LoginDeps{UserStore: nil})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
