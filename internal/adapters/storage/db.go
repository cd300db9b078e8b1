package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// Table and column names mirror the legacy blood_bank schema so existing
// data can be read in place.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS Hospital (
		Hospital_ID TEXT PRIMARY KEY,
		Name TEXT NOT NULL,
		Address TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS Hospital_Contact (
		Hospital_ID TEXT NOT NULL,
		Contact TEXT NOT NULL,
		FOREIGN KEY (Hospital_ID) REFERENCES Hospital(Hospital_ID)
	);

	CREATE TABLE IF NOT EXISTS Hospital_Email (
		Hospital_ID TEXT NOT NULL,
		Email TEXT NOT NULL,
		FOREIGN KEY (Hospital_ID) REFERENCES Hospital(Hospital_ID)
	);

	CREATE TABLE IF NOT EXISTS User_Login (
		User_ID TEXT PRIMARY KEY,
		Username TEXT NOT NULL UNIQUE,
		Password TEXT NOT NULL,
		Hospital_ID TEXT NOT NULL,
		FOREIGN KEY (Hospital_ID) REFERENCES Hospital(Hospital_ID)
	);

	CREATE TABLE IF NOT EXISTS User_Contact (
		User_ID TEXT NOT NULL,
		Contact TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS User_Email (
		User_ID TEXT NOT NULL,
		Email TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS Donor (
		Donor_ID TEXT PRIMARY KEY,
		F_name TEXT NOT NULL,
		L_name TEXT NOT NULL,
		Address TEXT,
		Gender TEXT NOT NULL,
		DOB TEXT NOT NULL,
		Age INTEGER NOT NULL,
		Blood_Group TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS Donor_Contact (
		Donor_ID TEXT NOT NULL,
		Contact TEXT NOT NULL,
		FOREIGN KEY (Donor_ID) REFERENCES Donor(Donor_ID)
	);

	CREATE TABLE IF NOT EXISTS Recipient (
		Recipient_ID TEXT PRIMARY KEY,
		F_name TEXT NOT NULL,
		L_name TEXT NOT NULL,
		Address TEXT,
		Gender TEXT NOT NULL,
		Age INTEGER NOT NULL,
		Blood_Group TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS Recipient_Contact (
		Recipient_ID TEXT NOT NULL,
		Contact TEXT NOT NULL,
		FOREIGN KEY (Recipient_ID) REFERENCES Recipient(Recipient_ID)
	);

	CREATE TABLE IF NOT EXISTS Donation (
		Donation_ID TEXT PRIMARY KEY,
		Hospital_ID TEXT NOT NULL,
		Donor_ID TEXT NOT NULL,
		Quantity INTEGER NOT NULL,
		Donation_date TEXT NOT NULL,
		FOREIGN KEY (Hospital_ID) REFERENCES Hospital(Hospital_ID),
		FOREIGN KEY (Donor_ID) REFERENCES Donor(Donor_ID)
	);

	CREATE TABLE IF NOT EXISTS Request (
		Request_ID TEXT PRIMARY KEY,
		Hospital_ID TEXT NOT NULL,
		Recipient_ID TEXT NOT NULL,
		Status TEXT NOT NULL,
		Quantity INTEGER NOT NULL,
		Blood_Group TEXT NOT NULL,
		Request_date TEXT NOT NULL,
		FOREIGN KEY (Hospital_ID) REFERENCES Hospital(Hospital_ID),
		FOREIGN KEY (Recipient_ID) REFERENCES Recipient(Recipient_ID)
	);

	CREATE TABLE IF NOT EXISTS Audit_Event (
		Event_ID TEXT PRIMARY KEY,
		Timestamp TEXT NOT NULL,
		Category TEXT NOT NULL,
		Action TEXT NOT NULL,
		Severity TEXT NOT NULL,
		Actor_ID TEXT NOT NULL,
		Resource_ID TEXT,
		Resource_Type TEXT,
		Description TEXT
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
