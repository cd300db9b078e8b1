package main

import (
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "bloodbank/internal/adapters/email"
	web "bloodbank/internal/adapters/http"
	"bloodbank/internal/adapters/storage"
	auditStore "bloodbank/internal/adapters/storage/audit"
	donationStore "bloodbank/internal/adapters/storage/donation"
	donorStore "bloodbank/internal/adapters/storage/donor"
	hospitalStore "bloodbank/internal/adapters/storage/hospital"
	"bloodbank/internal/adapters/storage/identifier"
	recipientStore "bloodbank/internal/adapters/storage/recipient"
	requestStore "bloodbank/internal/adapters/storage/request"
	userStore "bloodbank/internal/adapters/storage/user"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	dbPath := envOrDefault("BLOODBANK_DB", "bloodbank.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}
	log.Println("Database initialized successfully!")

	stores := &web.Stores{
		HospitalStore:  hospitalStore.NewSQLiteStore(db),
		UserStore:      userStore.NewSQLiteStore(db),
		DonorStore:     donorStore.NewSQLiteStore(db),
		RecipientStore: recipientStore.NewSQLiteStore(db),
		DonationStore:  donationStore.NewSQLiteStore(db),
		RequestStore:   requestStore.NewSQLiteStore(db),
		AuditStore:     auditStore.NewSQLiteStore(db),
	}

	// Configure email sender
	resendKey := os.Getenv("BLOODBANK_RESEND_KEY")
	emailFrom := envOrDefault("BLOODBANK_EMAIL_FROM", "Blood Bank <noreply@bloodbank.example>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if os.Getenv("BLOODBANK_ENV") == "production" {
			log.Println("WARNING: BLOODBANK_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set BLOODBANK_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux(stores, identifier.NewSQLiteAllocator(db))

	addr := envOrDefault("BLOODBANK_ADDR", ":8080")
	log.Printf("Blood bank %s starting on %s (env=%s)", version, addr, envOrDefault("BLOODBANK_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
