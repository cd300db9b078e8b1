package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bloodbank/internal/domain/audit"
)

// UserStoreForDelete defines the store interface needed by DeleteAccount.
type UserStoreForDelete interface {
	DeleteContacts(ctx context.Context, userID string) error
	DeleteEmails(ctx context.Context, userID string) error
	DeleteLogin(ctx context.Context, userID string) error
}

// DeleteAccountInput carries input for the account-deletion workflow.
type DeleteAccountInput struct {
	UserID string
	// Confirmed is the caller's explicit "I understand this is permanent"
	// acknowledgment. Nothing is deleted without it.
	Confirmed bool
}

// DeleteAccountDeps holds dependencies for DeleteAccount.
type DeleteAccountDeps struct {
	UserStore  UserStoreForDelete
	AuditStore AuditStoreForWorkflows
}

// Deletion errors
var (
	ErrNotConfirmed = errors.New("account deletion requires explicit confirmation")
	ErrEmptyUserID  = errors.New("user id is required")
)

// ExecuteDeleteAccount permanently removes a user login and its child rows.
//
// Deletes run in order: contacts, emails, then the login row. The child
// deletes are best-effort — a failure there is logged and audited but does
// not stop the login delete, and the operation reports success whenever the
// final delete succeeds. The associated Hospital and any other logins are
// never touched.
//
// PRE: input.Confirmed is true
// POST: The User_Login row is gone; the operation is irreversible
func ExecuteDeleteAccount(ctx context.Context, input DeleteAccountInput, deps DeleteAccountDeps) error {
	if !input.Confirmed {
		return ErrNotConfirmed
	}
	if input.UserID == "" {
		return ErrEmptyUserID
	}

	if err := deps.UserStore.DeleteContacts(ctx, input.UserID); err != nil {
		recordPartialFailure(ctx, deps.AuditStore, input.UserID, "delete_user_contacts", err)
	}
	if err := deps.UserStore.DeleteEmails(ctx, input.UserID); err != nil {
		recordPartialFailure(ctx, deps.AuditStore, input.UserID, "delete_user_emails", err)
	}

	if err := deps.UserStore.DeleteLogin(ctx, input.UserID); err != nil {
		return fmt.Errorf("could not delete account: %w", err)
	}

	if deps.AuditStore != nil {
		event := audit.NewEvent(input.UserID, audit.CategoryAccount, audit.ActionDelete).
			WithResource("user_login", input.UserID).
			WithDescription("account permanently deleted at user request")
		_ = deps.AuditStore.Insert(ctx, event)
	}

	slog.Info("account_event", "event", "account_deleted", "user_id", input.UserID)
	return nil
}
