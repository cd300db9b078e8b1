package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"bloodbank/internal/adapters/http/middleware"
	auditStore "bloodbank/internal/adapters/storage/audit"
	requestStore "bloodbank/internal/adapters/storage/request"
	"bloodbank/internal/application/orchestrators"
	"bloodbank/internal/application/projections"
	auditDomain "bloodbank/internal/domain/audit"
	donationDomain "bloodbank/internal/domain/donation"
	donorDomain "bloodbank/internal/domain/donor"
	recipientDomain "bloodbank/internal/domain/recipient"
	requestDomain "bloodbank/internal/domain/request"
	userDomain "bloodbank/internal/domain/user"
)

// dateLayout is the wire format for dates in API payloads.
const dateLayout = "2006-01-02"

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write_json_failed", "error", err.Error())
	}
}

// errorJSON writes a client-facing error message.
func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// badRequest maps domain validation errors straight onto 400 responses.
// The sentinel messages are already written for end users.
func badRequest(w http.ResponseWriter, err error) {
	errorJSON(w, http.StatusBadRequest, err.Error())
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/register", handleRegister)
	mux.HandleFunc("POST /api/login", handleLogin)
	mux.HandleFunc("POST /api/logout", handleLogout)
	mux.Handle("GET /api/account", middleware.RequireAuth(http.HandlerFunc(handleAccount)))
	mux.Handle("DELETE /api/account", middleware.RequireAuth(http.HandlerFunc(handleDeleteAccount)))

	mux.Handle("GET /api/dashboard", middleware.RequireAuth(http.HandlerFunc(handleDashboard)))
	mux.Handle("GET /api/analytics", middleware.RequireAuth(http.HandlerFunc(handleAnalytics)))
	mux.Handle("GET /api/stock", middleware.RequireAuth(http.HandlerFunc(handleStock)))
	mux.Handle("GET /api/audit", middleware.RequireAuth(http.HandlerFunc(handleAuditLog)))

	mux.Handle("GET /api/hospitals", middleware.RequireAuth(http.HandlerFunc(handleListHospitals)))
	mux.Handle("GET /api/hospitals/lookup", middleware.RequireAuth(http.HandlerFunc(handleHospitalLookup)))
	mux.Handle("GET /api/hospitals/me", middleware.RequireAuth(http.HandlerFunc(handleOwnHospital)))

	mux.Handle("GET /api/donors", middleware.RequireAuth(http.HandlerFunc(handleListDonors)))
	mux.Handle("POST /api/donors", middleware.RequireAuth(http.HandlerFunc(handleAddDonor)))
	mux.Handle("GET /api/donors/lookup", middleware.RequireAuth(http.HandlerFunc(handleDonorLookup)))
	mux.Handle("GET /api/donors/{id}", middleware.RequireAuth(http.HandlerFunc(handleGetDonor)))

	mux.Handle("GET /api/recipients", middleware.RequireAuth(http.HandlerFunc(handleListRecipients)))
	mux.Handle("POST /api/recipients", middleware.RequireAuth(http.HandlerFunc(handleAddRecipient)))
	mux.Handle("GET /api/recipients/lookup", middleware.RequireAuth(http.HandlerFunc(handleRecipientLookup)))

	mux.Handle("GET /api/donations", middleware.RequireAuth(http.HandlerFunc(handleListDonations)))
	mux.Handle("POST /api/donations", middleware.RequireAuth(http.HandlerFunc(handleRecordDonation)))

	mux.Handle("GET /api/requests", middleware.RequireAuth(http.HandlerFunc(handleListRequests)))
	mux.Handle("POST /api/requests", middleware.RequireAuth(http.HandlerFunc(handleCreateRequest)))
	mux.Handle("GET /api/requests/pending", middleware.RequireAuth(http.HandlerFunc(handlePendingRequestIDs)))
	mux.Handle("POST /api/requests/{id}/status", middleware.RequireAuth(http.HandlerFunc(handleUpdateRequestStatus)))
}

// --- auth and account handlers ---

type registerRequest struct {
	HospitalName    string `json:"hospital_name"`
	HospitalAddress string `json:"hospital_address"`
	HospitalContact string `json:"hospital_contact"`
	HospitalEmail   string `json:"hospital_email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	UserContact     string `json:"user_contact"`
	UserEmail       string `json:"user_email"`
}

func handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := orchestrators.ExecuteRegisterHospital(r.Context(), orchestrators.RegisterHospitalInput{
		HospitalName:    req.HospitalName,
		HospitalAddress: req.HospitalAddress,
		HospitalContact: req.HospitalContact,
		HospitalEmail:   req.HospitalEmail,
		Username:        req.Username,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		UserContact:     req.UserContact,
		UserEmail:       req.UserEmail,
	}, orchestrators.RegisterHospitalDeps{
		Allocator:     allocator,
		HospitalStore: stores.HospitalStore,
		UserStore:     stores.UserStore,
		AuditStore:    stores.AuditStore,
		Mailer:        confirmationMailer,
	})
	switch {
	case err == nil:
	case errors.Is(err, orchestrators.ErrUsernameTaken):
		errorJSON(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, orchestrators.ErrMissingField),
		errors.Is(err, orchestrators.ErrPasswordMismatch),
		errors.Is(err, userDomain.ErrPasswordTooShort):
		badRequest(w, err)
		return
	default:
		internalError(w, err)
		return
	}

	lookups.InvalidateHospitals()
	writeJSON(w, http.StatusCreated, map[string]string{
		"hospital_id": result.HospitalID,
		"user_id":     result.UserID,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Username: req.Username,
		Password: req.Password,
	}, orchestrators.LoginDeps{UserStore: stores.UserStore})
	if err != nil {
		errorJSON(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := sessions.Create(result.UserID, result.Username, result.HospitalID)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]string{
		"user_id":     result.UserID,
		"username":    result.Username,
		"hospital_id": result.HospitalID,
	})
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func handleAccount(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	login, err := stores.UserStore.GetByID(r.Context(), sess.UserID)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"user_id":     login.ID,
		"username":    login.Username,
		"hospital_id": login.HospitalID,
	})
}

type deleteAccountRequest struct {
	Confirmed bool `json:"confirmed"`
}

func handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var req deleteAccountRequest
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := orchestrators.ExecuteDeleteAccount(r.Context(), orchestrators.DeleteAccountInput{
		UserID:    sess.UserID,
		Confirmed: req.Confirmed,
	}, orchestrators.DeleteAccountDeps{
		UserStore:  stores.UserStore,
		AuditStore: stores.AuditStore,
	})
	switch {
	case err == nil:
	case errors.Is(err, orchestrators.ErrNotConfirmed):
		badRequest(w, err)
		return
	default:
		internalError(w, err)
		return
	}

	// The login row is gone; no live token may outlast it.
	sessions.DeleteForUser(sess.UserID)
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// --- read projections ---

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardDeps{
		DonorStore:     stores.DonorStore,
		RecipientStore: stores.RecipientStore,
		DonationStore:  stores.DonationStore,
		RequestStore:   stores.RequestStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func handleAnalytics(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetAnalytics(r.Context(), projections.GetAnalyticsDeps{
		DonorStore:     stores.DonorStore,
		RecipientStore: stores.RecipientStore,
		DonationStore:  stores.DonationStore,
		RequestStore:   stores.RequestStore,
		HospitalStore:  stores.HospitalStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func handleStock(w http.ResponseWriter, r *http.Request) {
	levels, err := projections.QueryGetBloodStock(r.Context(), projections.GetBloodStockDeps{
		DonationStore: stores.DonationStore,
		RequestStore:  stores.RequestStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, levels)
}

func handleAuditLog(w http.ResponseWriter, r *http.Request) {
	filter := auditStore.ListFilter{Limit: 100}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			errorJSON(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = n
	}
	if sev := r.URL.Query().Get("severity"); sev != "" {
		filter.Severity = auditDomain.Severity(sev)
	}

	events, err := stores.AuditStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// --- hospitals ---

func handleListHospitals(w http.ResponseWriter, r *http.Request) {
	rows, err := stores.HospitalStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func handleHospitalLookup(w http.ResponseWriter, r *http.Request) {
	rows, err := lookups.Hospitals(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func handleOwnHospital(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	h, err := stores.HospitalStore.GetByID(r.Context(), sess.HospitalID)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":      h.ID,
		"name":    h.Name,
		"address": h.Address,
	})
}

// --- donors ---

func handleListDonors(w http.ResponseWriter, r *http.Request) {
	if group := r.URL.Query().Get("blood_group"); group != "" {
		if !donorDomain.ValidBloodGroup(group) {
			badRequest(w, donorDomain.ErrInvalidBloodGroup)
			return
		}
		rows, err := stores.DonorStore.ListByBloodGroup(r.Context(), group)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
		return
	}

	rows, err := stores.DonorStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

type addDonorRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	Gender     string `json:"gender"`
	DOB        string `json:"dob"`
	BloodGroup string `json:"blood_group"`
	Contact    string `json:"contact"`
}

func handleAddDonor(w http.ResponseWriter, r *http.Request) {
	var req addDonorRequest
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	dob, err := time.Parse(dateLayout, req.DOB)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "dob must be formatted YYYY-MM-DD")
		return
	}

	id, err := orchestrators.ExecuteAddDonor(r.Context(), orchestrators.AddDonorInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Address:    req.Address,
		Gender:     req.Gender,
		DOB:        dob,
		BloodGroup: req.BloodGroup,
		Contact:    req.Contact,
	}, orchestrators.AddDonorDeps{
		Allocator:  allocator,
		DonorStore: stores.DonorStore,
		AuditStore: stores.AuditStore,
	})
	if err != nil {
		if isValidationError(err) {
			badRequest(w, err)
			return
		}
		internalError(w, err)
		return
	}

	lookups.InvalidateDonors()
	writeJSON(w, http.StatusCreated, map[string]string{"donor_id": id})
}

func handleGetDonor(w http.ResponseWriter, r *http.Request) {
	row, err := stores.DonorStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			errorJSON(w, http.StatusNotFound, "donor not found")
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func handleDonorLookup(w http.ResponseWriter, r *http.Request) {
	rows, err := lookups.Donors(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// --- recipients ---

func handleListRecipients(w http.ResponseWriter, r *http.Request) {
	rows, err := stores.RecipientStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

type addRecipientRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	Gender     string `json:"gender"`
	Age        int    `json:"age"`
	BloodGroup string `json:"blood_group"`
	Contact    string `json:"contact"`
}

func handleAddRecipient(w http.ResponseWriter, r *http.Request) {
	var req addRecipientRequest
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := orchestrators.ExecuteAddRecipient(r.Context(), orchestrators.AddRecipientInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Address:    req.Address,
		Gender:     req.Gender,
		Age:        req.Age,
		BloodGroup: req.BloodGroup,
		Contact:    req.Contact,
	}, orchestrators.AddRecipientDeps{
		Allocator:      allocator,
		RecipientStore: stores.RecipientStore,
		AuditStore:     stores.AuditStore,
	})
	if err != nil {
		if isValidationError(err) {
			badRequest(w, err)
			return
		}
		internalError(w, err)
		return
	}

	lookups.InvalidateRecipients()
	writeJSON(w, http.StatusCreated, map[string]string{"recipient_id": id})
}

func handleRecipientLookup(w http.ResponseWriter, r *http.Request) {
	rows, err := lookups.Recipients(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// --- donations ---

func handleListDonations(w http.ResponseWriter, r *http.Request) {
	rows, err := stores.DonationStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

type recordDonationRequest struct {
	DonorID  string `json:"donor_id"`
	Quantity int    `json:"quantity"`
	Date     string `json:"date"` // optional, defaults to today
}

func handleRecordDonation(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var req recordDonationRequest
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var date time.Time
	if req.Date != "" {
		var err error
		date, err = time.Parse(dateLayout, req.Date)
		if err != nil {
			errorJSON(w, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
			return
		}
	}

	id, err := orchestrators.ExecuteRecordDonation(r.Context(), orchestrators.RecordDonationInput{
		HospitalID: sess.HospitalID,
		DonorID:    req.DonorID,
		Quantity:   req.Quantity,
		Date:       date,
	}, orchestrators.RecordDonationDeps{
		Allocator:     allocator,
		DonationStore: stores.DonationStore,
	})
	if err != nil {
		if isValidationError(err) {
			badRequest(w, err)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"donation_id": id})
}

// --- requests ---

func handleListRequests(w http.ResponseWriter, r *http.Request) {
	rows, err := stores.RequestStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

type createRequestRequest struct {
	RecipientID string `json:"recipient_id"`
	BloodGroup  string `json:"blood_group"`
	Quantity    int    `json:"quantity"`
}

func handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var req createRequestRequest
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := orchestrators.ExecuteCreateRequest(r.Context(), orchestrators.CreateRequestInput{
		HospitalID:  sess.HospitalID,
		RecipientID: req.RecipientID,
		BloodGroup:  req.BloodGroup,
		Quantity:    req.Quantity,
	}, orchestrators.CreateRequestDeps{
		Allocator:    allocator,
		RequestStore: stores.RequestStore,
	})
	if err != nil {
		if isValidationError(err) {
			badRequest(w, err)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"request_id": id})
}

func handlePendingRequestIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := stores.RequestStore.ListPendingIDs(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

type updateRequestStatusRequest struct {
	Status string `json:"status"`
}

func handleUpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("id")

	var req updateRequestStatusRequest
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := orchestrators.ExecuteUpdateRequestStatus(r.Context(), orchestrators.UpdateRequestStatusInput{
		RequestID: requestID,
		Status:    req.Status,
	}, orchestrators.UpdateRequestStatusDeps{RequestStore: stores.RequestStore})
	switch {
	case err == nil:
	case errors.Is(err, requestStore.ErrNotFound):
		errorJSON(w, http.StatusNotFound, "request not found")
		return
	case errors.Is(err, requestDomain.ErrNotPending),
		errors.Is(err, requestDomain.ErrInvalidStatus):
		errorJSON(w, http.StatusConflict, err.Error())
		return
	default:
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validationErrors enumerates the validation sentinels that map onto 400
// rather than 500 when they escape an orchestrator.
var validationErrors = []error{
	orchestrators.ErrEmptyContact,
	donorDomain.ErrEmptyFirstName,
	donorDomain.ErrEmptyLastName,
	donorDomain.ErrInvalidGender,
	donorDomain.ErrInvalidBloodGroup,
	donorDomain.ErrFutureBirthDate,
	recipientDomain.ErrEmptyFirstName,
	recipientDomain.ErrEmptyLastName,
	recipientDomain.ErrInvalidGender,
	recipientDomain.ErrInvalidBloodGroup,
	recipientDomain.ErrInvalidAge,
	donationDomain.ErrEmptyDonor,
	donationDomain.ErrEmptyHospital,
	donationDomain.ErrInvalidQuantity,
	donationDomain.ErrFutureDate,
	requestDomain.ErrEmptyRecipient,
	requestDomain.ErrEmptyHospital,
	requestDomain.ErrInvalidQuantity,
	requestDomain.ErrInvalidBloodGroup,
}

func isValidationError(err error) bool {
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
