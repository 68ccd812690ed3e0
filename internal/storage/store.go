// Package storage provides abstractions for the remote bill collection.
package storage

import (
	"context"
	"io"

	"github.com/billed-app/billed-web/internal/models"
)

// FileRef is the persisted reference to an uploaded receipt. FileURL is
// only valid once the store has accepted the upload.
type FileRef struct {
	FileURL string `json:"fileUrl"`
	Key     string `json:"key"`
}

// FileUpload carries one receipt file to the store. Email stamps the
// upload with its owner before the bill record itself exists.
type FileUpload struct {
	FileName string
	Email    string
	Content  io.Reader
}

// BillStore defines the interface over the remote bill collection.
// Implementations hide the transport; callers only see bills, file
// references and the error taxonomy in errors.go. The interface is
// constructor-injected everywhere so tests can substitute a fake
// without runtime patching.
type BillStore interface {
	// List retrieves the caller's bills. No ordering is guaranteed;
	// views sort for themselves.
	List(ctx context.Context) ([]models.Bill, error)

	// CreateFile uploads a receipt attachment and returns its
	// persisted reference.
	CreateFile(ctx context.Context, upload FileUpload) (FileRef, error)

	// Update persists a (possibly new) bill record and returns the
	// canonical stored record with ID and FileURL populated.
	Update(ctx context.Context, bill models.Bill) (models.Bill, error)
}
