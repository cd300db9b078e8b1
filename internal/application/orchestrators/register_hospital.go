package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	userStore "bloodbank/internal/adapters/storage/user"
	"bloodbank/internal/domain/audit"
	"bloodbank/internal/domain/hospital"
	"bloodbank/internal/domain/user"
)

// HospitalStoreForRegister defines the store interface needed by RegisterHospital.
type HospitalStoreForRegister interface {
	Insert(ctx context.Context, h hospital.Hospital) error
	InsertContact(ctx context.Context, c hospital.Contact) error
	InsertEmail(ctx context.Context, e hospital.Email) error
}

// UserStoreForRegister defines the store interface needed by RegisterHospital.
type UserStoreForRegister interface {
	InsertLogin(ctx context.Context, l user.Login) error
	InsertContact(ctx context.Context, c user.Contact) error
	InsertEmail(ctx context.Context, e user.Email) error
}

// AuditStoreForWorkflows records workflow audit events, including the
// reconciliation trail for accepted partial writes.
type AuditStoreForWorkflows interface {
	Insert(ctx context.Context, e audit.Event) error
}

// ConfirmationSender delivers the post-registration confirmation email.
type ConfirmationSender interface {
	SendRegistrationConfirmation(ctx context.Context, to, hospitalName, username string) error
}

// RegisterHospitalInput carries the registration form fields.
type RegisterHospitalInput struct {
	HospitalName    string
	HospitalAddress string
	HospitalContact string
	HospitalEmail   string
	Username        string
	Password        string
	PasswordConfirm string
	UserContact     string
	UserEmail       string
}

// RegisterHospitalResult carries the identifiers of the created records.
type RegisterHospitalResult struct {
	HospitalID string
	UserID     string
}

// RegisterHospitalDeps holds dependencies for RegisterHospital.
type RegisterHospitalDeps struct {
	Allocator     IDAllocator
	HospitalStore HospitalStoreForRegister
	UserStore     UserStoreForRegister
	AuditStore    AuditStoreForWorkflows
	Mailer        ConfirmationSender // optional; nil skips the confirmation email
}

// Registration errors
var (
	ErrMissingField         = errors.New("all fields are required")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrHospitalInsertFailed = errors.New("could not create hospital record")
	ErrUsernameTaken        = userStore.ErrUsernameTaken
)

// ExecuteRegisterHospital creates a hospital and its admin login in one pass.
//
// The multi-table write is a saga, not a transaction: the Hospital and
// User_Login inserts are the commit points, contact/email child rows are
// best-effort, and a User_Login failure leaves the Hospital row in place
// (registration can be retried with a different username). Every accepted
// partial write is logged and recorded as a warning audit event.
//
// PRE: Input fields come straight from the registration form
// POST: On success both records exist and their IDs are returned
// INVARIANT: No write is attempted before validation and ID allocation
// succeed; the plaintext password is never stored or logged
func ExecuteRegisterHospital(ctx context.Context, input RegisterHospitalInput, deps RegisterHospitalDeps) (RegisterHospitalResult, error) {
	if input.HospitalName == "" || input.HospitalAddress == "" || input.HospitalContact == "" ||
		input.HospitalEmail == "" || input.Username == "" || input.Password == "" ||
		input.UserContact == "" || input.UserEmail == "" {
		return RegisterHospitalResult{}, ErrMissingField
	}
	if len(input.Password) < user.MinPasswordLength {
		return RegisterHospitalResult{}, user.ErrPasswordTooShort
	}
	if input.Password != input.PasswordConfirm {
		return RegisterHospitalResult{}, ErrPasswordMismatch
	}

	// Probe both sequences before writing anything. A prefix that has
	// overflowed or an unreachable store aborts the whole registration
	// with zero writes.
	if _, err := deps.Allocator.NextID(ctx, "H", "Hospital", "Hospital_ID"); err != nil {
		return RegisterHospitalResult{}, fmt.Errorf("%w: %v", ErrIDAllocationFailed, err)
	}
	if _, err := deps.Allocator.NextID(ctx, "U", "User_Login", "User_ID"); err != nil {
		return RegisterHospitalResult{}, fmt.Errorf("%w: %v", ErrIDAllocationFailed, err)
	}

	login := user.Login{Username: input.Username}
	if err := login.SetPassword(input.Password); err != nil {
		return RegisterHospitalResult{}, err
	}

	hospitalID, err := insertWithFreshID(ctx, deps.Allocator, "H", "Hospital", "Hospital_ID", func(id string) error {
		h := hospital.Hospital{ID: id, Name: input.HospitalName, Address: input.HospitalAddress}
		if err := h.Validate(); err != nil {
			return err
		}
		return deps.HospitalStore.Insert(ctx, h)
	})
	if err != nil {
		if errors.Is(err, ErrIDAllocationFailed) {
			return RegisterHospitalResult{}, err
		}
		return RegisterHospitalResult{}, fmt.Errorf("%w: %v", ErrHospitalInsertFailed, err)
	}

	// Child rows are best-effort: the hospital row is already committed and
	// stays regardless.
	if err := deps.HospitalStore.InsertContact(ctx, hospital.Contact{HospitalID: hospitalID, Contact: input.HospitalContact}); err != nil {
		recordPartialFailure(ctx, deps.AuditStore, hospitalID, "hospital_contact", err)
	}
	if err := deps.HospitalStore.InsertEmail(ctx, hospital.Email{HospitalID: hospitalID, Email: input.HospitalEmail}); err != nil {
		recordPartialFailure(ctx, deps.AuditStore, hospitalID, "hospital_email", err)
	}

	login.HospitalID = hospitalID
	userID, err := insertWithFreshID(ctx, deps.Allocator, "U", "User_Login", "User_ID", func(id string) error {
		l := login
		l.ID = id
		if err := l.Validate(); err != nil {
			return err
		}
		return deps.UserStore.InsertLogin(ctx, l)
	})
	if err != nil {
		// The hospital row stays behind without an admin. Record it so the
		// partial state is inspectable rather than silent.
		recordPartialFailure(ctx, deps.AuditStore, hospitalID, "user_login", err)
		if errors.Is(err, userStore.ErrUsernameTaken) {
			return RegisterHospitalResult{}, fmt.Errorf("%w (hospital %s was created)", ErrUsernameTaken, hospitalID)
		}
		return RegisterHospitalResult{}, err
	}

	if err := deps.UserStore.InsertContact(ctx, user.Contact{UserID: userID, Contact: input.UserContact}); err != nil {
		recordPartialFailure(ctx, deps.AuditStore, userID, "user_contact", err)
	}
	if err := deps.UserStore.InsertEmail(ctx, user.Email{UserID: userID, Email: input.UserEmail}); err != nil {
		recordPartialFailure(ctx, deps.AuditStore, userID, "user_email", err)
	}

	if deps.AuditStore != nil {
		event := audit.NewEvent(userID, audit.CategoryRegistration, audit.ActionCreate).
			WithResource("hospital", hospitalID).
			WithDescription(fmt.Sprintf("hospital %q registered with admin %q", input.HospitalName, input.Username))
		_ = deps.AuditStore.Insert(ctx, event)
	}

	if deps.Mailer != nil {
		if err := deps.Mailer.SendRegistrationConfirmation(ctx, input.UserEmail, input.HospitalName, input.Username); err != nil {
			slog.Warn("registration_email_failed", "user_id", userID, "error", err.Error())
		}
	}

	slog.Info("registration_event", "event", "hospital_registered", "hospital_id", hospitalID, "user_id", userID, "username", input.Username)

	return RegisterHospitalResult{HospitalID: hospitalID, UserID: userID}, nil
}

// recordPartialFailure logs an accepted partial write and appends it to the
// audit reconciliation trail.
func recordPartialFailure(ctx context.Context, store AuditStoreForWorkflows, resourceID, step string, cause error) {
	slog.Warn("partial_write", "step", step, "resource_id", resourceID, "error", cause.Error())
	if store == nil {
		return
	}
	event := audit.NewEvent("system", audit.CategoryRegistration, audit.ActionPartialFailure).
		WithSeverity(audit.SeverityWarning).
		WithResource(step, resourceID).
		WithDescription(cause.Error())
	_ = store.Insert(ctx, event)
}
