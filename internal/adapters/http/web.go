package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"bloodbank/internal/adapters/email"
	"bloodbank/internal/adapters/http/middleware"
	auditStore "bloodbank/internal/adapters/storage/audit"
	donationStore "bloodbank/internal/adapters/storage/donation"
	donorStore "bloodbank/internal/adapters/storage/donor"
	hospitalStore "bloodbank/internal/adapters/storage/hospital"
	recipientStore "bloodbank/internal/adapters/storage/recipient"
	requestStore "bloodbank/internal/adapters/storage/request"
	userStore "bloodbank/internal/adapters/storage/user"
	"bloodbank/internal/application/lookup"
	"bloodbank/internal/application/orchestrators"
)

// Stores holds all storage dependencies.
type Stores struct {
	HospitalStore  hospitalStore.Store
	UserStore      userStore.Store
	DonorStore     donorStore.Store
	RecipientStore recipientStore.Store
	DonationStore  donationStore.Store
	RequestStore   requestStore.Store
	AuditStore     auditStore.Store
}

// loadCSRFKey reads the CSRF secret from BLOODBANK_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("BLOODBANK_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("BLOODBANK_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("BLOODBANK_ENV") == "production" {
		log.Fatal("BLOODBANK_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set BLOODBANK_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Global ID allocator instance (set by NewMux)
var allocator orchestrators.IDAllocator

// Global pick-list cache (set by NewMux)
var lookups *lookup.Cache

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global confirmation mailer (set by SetEmailSender)
var confirmationMailer orchestrators.ConfirmationSender

// SetEmailSender sets the sender used for registration confirmations.
func SetEmailSender(sender email.Sender) {
	confirmationMailer = email.NewWelcomeMailer(sender)
}

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores, alloc orchestrators.IDAllocator) http.Handler {
	stores = s
	allocator = alloc
	sessions = middleware.NewSessionStore()
	lookups = lookup.New(s.DonorStore, s.RecipientStore, s.HospitalStore)
	middleware.SecureCookies = os.Getenv("BLOODBANK_ENV") == "production"

	mux := http.NewServeMux()
	registerRoutes(mux)

	csrfKey := loadCSRFKey()
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}
