// Package sqlite provides a SQLite-backed implementation of the storage.Backend interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/billed-app/billed-web/internal/models"
	"github.com/billed-app/billed-web/internal/storage"
)

// Ensure SQLiteStore implements storage.Backend
var _ storage.Backend = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Backend using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ListBills retrieves all bills owned by the given email.
func (s *SQLiteStore) ListBills(ctx context.Context, email string) ([]models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, type, name, amount, date, vat, pct, commentary,
		        file_url, file_name, file_key, status, comment_admin
		 FROM bills WHERE email = ?`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	bills := []models.Bill{}
	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(
			&b.ID, &b.Email, &b.Type, &b.Name, &b.Amount, &b.Date, &b.Vat,
			&b.Pct, &b.Commentary, &b.FileURL, &b.FileName, &b.Key,
			&b.Status, &b.CommentAdmin,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// GetBill retrieves a bill by ID.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	b := &models.Bill{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, type, name, amount, date, vat, pct, commentary,
		        file_url, file_name, file_key, status, comment_admin
		 FROM bills WHERE id = ?`,
		billID,
	).Scan(
		&b.ID, &b.Email, &b.Type, &b.Name, &b.Amount, &b.Date, &b.Vat,
		&b.Pct, &b.Commentary, &b.FileURL, &b.FileName, &b.Key,
		&b.Status, &b.CommentAdmin,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bill not found: %s", billID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return b, nil
}

// UpsertBill persists the bill, assigning an ID and a pending status
// when they are missing.
func (s *SQLiteStore) UpsertBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.Status == "" {
		bill.Status = models.StatusPending
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bills (id, email, type, name, amount, date, vat, pct,
		                    commentary, file_url, file_name, file_key,
		                    status, comment_admin)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     email = excluded.email,
		     type = excluded.type,
		     name = excluded.name,
		     amount = excluded.amount,
		     date = excluded.date,
		     vat = excluded.vat,
		     pct = excluded.pct,
		     commentary = excluded.commentary,
		     file_url = excluded.file_url,
		     file_name = excluded.file_name,
		     file_key = excluded.file_key,
		     status = excluded.status,
		     comment_admin = excluded.comment_admin`,
		bill.ID, bill.Email, bill.Type, bill.Name, bill.Amount, bill.Date,
		bill.Vat, bill.Pct, bill.Commentary, bill.FileURL, bill.FileName,
		bill.Key, bill.Status, bill.CommentAdmin,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert bill: %w", err)
	}
	return nil
}
