package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/billed-app/billed-web/internal/models"
	"github.com/billed-app/billed-web/internal/storage"
	"github.com/billed-app/billed-web/internal/storage/files"
	"github.com/billed-app/billed-web/internal/storage/httpstore"
	"github.com/billed-app/billed-web/internal/storage/sqlite"
)

// setupTestServer starts the bills API over a temp database and
// returns an httpstore client scoped to the given email.
func setupTestServer(t *testing.T, email string) (storage.BillStore, string) {
	t.Helper()
	dir := t.TempDir()

	backend, err := sqlite.New(filepath.Join(dir, "bills.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { backend.Close() })

	disk, err := files.NewDiskStore(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatalf("failed to create disk store: %v", err)
	}

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	NewHandler(backend, disk, server.URL).Register(mux)

	return httpstore.New(server.URL, email, server.Client()), server.URL
}

func TestBillRoundTrip(t *testing.T) {
	store, _ := setupTestServer(t, "employee@test.tld")
	ctx := context.Background()

	ref, err := store.CreateFile(ctx, storage.FileUpload{
		FileName: "newBillTest.png",
		Email:    "employee@test.tld",
		Content:  strings.NewReader("fake image bytes"),
	})
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}
	if ref.Key == "" || !strings.Contains(ref.FileURL, "/files/") {
		t.Fatalf("unexpected file ref: %+v", ref)
	}

	draft := models.Bill{
		Email:    "employee@test.tld",
		Type:     "Transports",
		Name:     "Vol Paris Londres",
		Amount:   348,
		Date:     "2024-04-26",
		Vat:      "70",
		Pct:      20,
		FileURL:  ref.FileURL,
		FileName: "newBillTest.png",
		Key:      ref.Key,
		Status:   models.StatusPending,
	}
	stored, err := store.Update(ctx, draft)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if stored.ID == "" {
		t.Error("store should assign an ID on creation")
	}

	bills, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(bills) != 1 || bills[0].Name != "Vol Paris Londres" || bills[0].FileURL != ref.FileURL {
		t.Errorf("unexpected list: %+v", bills)
	}

	// The attachment is retrievable at its minted URL.
	resp, err := http.Get(ref.FileURL)
	if err != nil {
		t.Fatalf("GET attachment failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "fake image bytes" {
		t.Errorf("attachment content = %q", body)
	}
}

func TestListScopesByEmail(t *testing.T) {
	store, baseURL := setupTestServer(t, "employee@test.tld")
	ctx := context.Background()

	other := httpstore.New(baseURL, "other@test.tld", nil)
	if _, err := other.Update(ctx, models.Bill{Email: "other@test.tld", Name: "Taxi", Date: "2024-01-01"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	bills, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(bills) != 0 {
		t.Errorf("list leaked %d foreign bills", len(bills))
	}
}

func TestUpdateUnknownBillIs404(t *testing.T) {
	store, _ := setupTestServer(t, "employee@test.tld")

	_, err := store.Update(context.Background(), models.Bill{
		ID:    "missing",
		Email: "employee@test.tld",
	})
	if err == nil {
		t.Fatal("expected error for unknown bill")
	}
	if !storage.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "Erreur 404") {
		t.Errorf("error %q should carry Erreur 404", err)
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	store, _ := setupTestServer(t, "employee@test.tld")

	_, err := store.CreateFile(context.Background(), storage.FileUpload{
		FileName: "invoice.pdf",
		Email:    "employee@test.tld",
		Content:  strings.NewReader("x"),
	})
	if err == nil {
		t.Error("expected rejection for .pdf upload")
	}
}

func TestCreateValidatesInvariants(t *testing.T) {
	store, _ := setupTestServer(t, "employee@test.tld")
	ctx := context.Background()

	cases := []struct {
		name string
		bill models.Bill
	}{
		{"missing email", models.Bill{Name: "x"}},
		{"negative amount", models.Bill{Email: "a@a", Amount: -1}},
		{"pct out of range", models.Bill{Email: "a@a", Pct: 150}},
		{"unknown status", models.Bill{Email: "a@a", Status: "maybe"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := store.Update(ctx, c.bill); err == nil {
				t.Errorf("expected validation rejection for %s", c.name)
			}
		})
	}
}
