package storage

import (
	"context"

	"github.com/billed-app/billed-web/internal/models"
)

// Backend is the server-side persistence interface behind the bills
// API. It is wider than BillStore because the API serves every
// employee, not one session. This abstraction allows swapping storage
// backends (SQLite, PostgreSQL, etc.) without changing the handlers.
type Backend interface {
	// ListBills retrieves all bills owned by email. An unknown email
	// yields an empty list, not an error.
	ListBills(ctx context.Context, email string) ([]models.Bill, error)

	// GetBill retrieves a bill by its ID.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// UpsertBill persists the bill, assigning an ID when it has none.
	// The bill is updated in place with the assigned ID.
	UpsertBill(ctx context.Context, bill *models.Bill) error

	// Close releases any resources held by the backend.
	Close() error
}
