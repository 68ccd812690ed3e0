// Package api implements the bills HTTP API the web client's store
// talks to: JSON bill records plus multipart receipt uploads.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/billed-app/billed-web/internal/models"
	"github.com/billed-app/billed-web/internal/storage"
	"github.com/billed-app/billed-web/internal/storage/files"
)

// maxUploadBytes bounds receipt uploads.
const maxUploadBytes = 10 << 20

// Handler serves the bills collection over a storage.Backend and a
// disk attachment store.
type Handler struct {
	backend storage.Backend
	disk    *files.DiskStore
	baseURL string
}

// NewHandler builds the API handler. baseURL is the externally
// reachable address used to mint attachment URLs.
func NewHandler(backend storage.Backend, disk *files.DiskStore, baseURL string) *Handler {
	return &Handler{
		backend: backend,
		disk:    disk,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Register mounts the API routes.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /bills", h.handleList)
	mux.HandleFunc("POST /bills", h.handleCreate)
	mux.HandleFunc("PATCH /bills/{id}", h.handleUpdate)
	mux.HandleFunc("POST /files", h.handleUpload)
	mux.HandleFunc("GET /files/{key}", h.handleFile)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "email query parameter required", http.StatusBadRequest)
		return
	}

	bills, err := h.backend.ListBills(r.Context(), email)
	if err != nil {
		slog.Error("failed to list bills", "email", email, "error", err)
		http.Error(w, "failed to list bills", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var bill models.Bill
	if err := json.NewDecoder(r.Body).Decode(&bill); err != nil {
		http.Error(w, "invalid bill payload", http.StatusBadRequest)
		return
	}
	bill.ID = "" // the store assigns IDs on creation

	if msg := validate(&bill); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	if err := h.backend.UpsertBill(r.Context(), &bill); err != nil {
		slog.Error("failed to create bill", "email", bill.Email, "error", err)
		http.Error(w, "failed to create bill", http.StatusInternalServerError)
		return
	}
	slog.Info("bill created", "id", bill.ID, "email", bill.Email)
	writeJSON(w, http.StatusCreated, bill)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.backend.GetBill(r.Context(), id); err != nil {
		http.Error(w, "bill not found", http.StatusNotFound)
		return
	}

	var bill models.Bill
	if err := json.NewDecoder(r.Body).Decode(&bill); err != nil {
		http.Error(w, "invalid bill payload", http.StatusBadRequest)
		return
	}
	bill.ID = id

	if msg := validate(&bill); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	if err := h.backend.UpsertBill(r.Context(), &bill); err != nil {
		slog.Error("failed to update bill", "id", id, "error", err)
		http.Error(w, "failed to update bill", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid upload form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileName := filepath.Base(header.Filename)
	if !files.Allowed(fileName) {
		http.Error(w, "unsupported file type", http.StatusBadRequest)
		return
	}

	key, err := h.disk.Save(fileName, file)
	if err != nil {
		slog.Error("failed to store attachment", "file", fileName, "error", err)
		http.Error(w, "failed to store attachment", http.StatusInternalServerError)
		return
	}

	slog.Info("attachment stored", "key", key, "email", r.FormValue("email"))
	writeJSON(w, http.StatusCreated, storage.FileRef{
		FileURL: h.baseURL + "/files/" + key,
		Key:     key,
	})
}

func (h *Handler) handleFile(w http.ResponseWriter, r *http.Request) {
	path, err := h.disk.Path(r.PathValue("key"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

// validate enforces the record invariants the store promises its
// callers. It returns a message rather than an error; these are 400s,
// not failures.
func validate(bill *models.Bill) string {
	if bill.Email == "" {
		return "email required"
	}
	if bill.Amount < 0 {
		return "amount must not be negative"
	}
	if bill.Pct < 0 || bill.Pct > 100 {
		return "pct must be between 0 and 100"
	}
	switch bill.Status {
	case "", models.StatusPending, models.StatusAccepted, models.StatusRefused:
	default:
		return "unknown status"
	}
	if bill.Status == "" {
		bill.Status = models.StatusPending
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
