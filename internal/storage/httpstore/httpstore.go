// Package httpstore implements storage.BillStore over the bills API's
// JSON and multipart endpoints.
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/billed-app/billed-web/internal/models"
	"github.com/billed-app/billed-web/internal/storage"
)

// Ensure Store implements storage.BillStore
var _ storage.BillStore = (*Store)(nil)

// Store is a bills-API client scoped to one employee's email. The
// scoping mirrors how the session record drives every store call: a
// view never lists or writes bills for anyone but the session user.
type Store struct {
	baseURL string
	email   string
	client  *http.Client
}

// New returns a store talking to the bills API at baseURL on behalf of
// email. A nil client falls back to http.DefaultClient.
func New(baseURL, email string, client *http.Client) *Store {
	if client == nil {
		client = http.DefaultClient
	}
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		email:   email,
		client:  client,
	}
}

// List retrieves the employee's bills. No ordering is guaranteed.
func (s *Store) List(ctx context.Context) ([]models.Bill, error) {
	u := fmt.Sprintf("%s/bills?email=%s", s.baseURL, url.QueryEscape(s.email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build list request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bills API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return nil, err
	}

	var bills []models.Bill
	if err := json.NewDecoder(resp.Body).Decode(&bills); err != nil {
		return nil, fmt.Errorf("failed to decode bill list: %w", err)
	}
	return bills, nil
}

// CreateFile uploads a receipt attachment as a multipart form and
// returns the persisted reference.
func (s *Store) CreateFile(ctx context.Context, upload storage.FileUpload) (storage.FileRef, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", upload.FileName)
	if err != nil {
		return storage.FileRef{}, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, upload.Content); err != nil {
		return storage.FileRef{}, fmt.Errorf("failed to read upload content: %w", err)
	}
	if err := w.WriteField("email", upload.Email); err != nil {
		return storage.FileRef{}, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := w.Close(); err != nil {
		return storage.FileRef{}, fmt.Errorf("failed to finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/files", &body)
	if err != nil {
		return storage.FileRef{}, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return storage.FileRef{}, fmt.Errorf("bills API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return storage.FileRef{}, err
	}

	var ref storage.FileRef
	if err := json.NewDecoder(resp.Body).Decode(&ref); err != nil {
		return storage.FileRef{}, fmt.Errorf("failed to decode file reference: %w", err)
	}
	return ref, nil
}

// Update persists the bill and returns the canonical stored record.
// A bill without an ID is created; one with an ID is updated.
func (s *Store) Update(ctx context.Context, bill models.Bill) (models.Bill, error) {
	payload, err := json.Marshal(bill)
	if err != nil {
		return models.Bill{}, fmt.Errorf("failed to encode bill: %w", err)
	}

	method, u := http.MethodPost, s.baseURL+"/bills"
	if bill.ID != "" {
		method, u = http.MethodPatch, s.baseURL+"/bills/"+url.PathEscape(bill.ID)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(payload))
	if err != nil {
		return models.Bill{}, fmt.Errorf("failed to build update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return models.Bill{}, fmt.Errorf("bills API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return models.Bill{}, err
	}

	var stored models.Bill
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return models.Bill{}, fmt.Errorf("failed to decode stored bill: %w", err)
	}
	return stored, nil
}

// statusError maps a non-2xx response onto the store error taxonomy.
// 404s and 5xx responses become StatusErrors whose message carries the
// code, because views match on that text.
func statusError(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return storage.NewStatusError(http.StatusNotFound)
	case resp.StatusCode >= 500:
		return storage.NewStatusError(resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("bills API rejected request: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}
