package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/billed-app/billed-web/internal/models"
	"github.com/billed-app/billed-web/internal/storage"
	"github.com/billed-app/billed-web/internal/storage/files"
)

// defaultPct is the VAT percentage applied when the form leaves the
// field empty.
const defaultPct = 20

// maxUploadBytes bounds receipt uploads.
const maxUploadBytes = 10 << 20

// NewBill is the creation-form component. It validates the receipt
// file, uploads it through the store before submission, and submits
// the assembled bill. All of its state flows through the form's
// declared inputs; a re-render carries everything forward.
type NewBill struct {
	store    storage.BillStore
	email    string
	navigate Navigate
}

// NewNewBill returns a creation-form component for the given employee.
func NewNewBill(store storage.BillStore, email string, navigate Navigate) *NewBill {
	return &NewBill{store: store, email: email, navigate: navigate}
}

// Render writes the empty creation form.
func (n *NewBill) Render(_ context.Context, w io.Writer) error {
	return RenderNewBill(w, NewBillPage{})
}

// HandleChangeFile processes a receipt selection. A file with an
// accepted image extension is uploaded to the store immediately and
// its reference captured in the form state; anything else clears the
// field and surfaces a validation message without touching the store.
// A second selection supersedes the first.
func (n *NewBill) HandleChangeFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	values := readFormValues(r)

	file, header, err := r.FormFile("file")
	if err != nil {
		n.rerender(w, NewBillPage{
			Values:  values,
			Message: "Veuillez sélectionner un justificatif.",
		})
		return
	}
	defer file.Close()

	fileName := filepath.Base(header.Filename)
	if !files.Allowed(fileName) {
		n.rerender(w, NewBillPage{
			Values:  values,
			Message: "Seuls les justificatifs jpg, jpeg, png ou gif sont acceptés.",
		})
		return
	}

	ref, err := n.store.CreateFile(r.Context(), storage.FileUpload{
		FileName: fileName,
		Email:    n.email,
		Content:  file,
	})
	if err != nil {
		slog.Warn("receipt upload rejected by store", "file", fileName, "error", err)
		n.storeError(w, err)
		return
	}

	n.rerender(w, NewBillPage{
		Values:  values,
		File:    UploadedFile{URL: ref.FileURL, Key: ref.Key, Name: fileName},
		Message: "Justificatif " + fileName + " envoyé.",
	})
}

// HandleSubmit assembles the bill from the form state plus the
// captured upload reference and persists it with status pending.
// Without a prior successful upload the store is never called; on
// success the user is navigated back to the bill list.
func (n *NewBill) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	values := readFormValues(r)
	uploaded := UploadedFile{
		URL:  r.FormValue("file-url"),
		Key:  r.FormValue("file-key"),
		Name: r.FormValue("file-name"),
	}

	if !uploaded.Set() {
		n.rerender(w, NewBillPage{
			Values:  values,
			Message: "Ajoutez un justificatif avant d'envoyer la note de frais.",
		})
		return
	}

	bill, problem := n.assemble(values, uploaded)
	if problem != "" {
		n.rerender(w, NewBillPage{Values: values, File: uploaded, Message: problem})
		return
	}

	if _, err := n.store.Update(r.Context(), bill); err != nil {
		slog.Warn("bill submission rejected by store", "name", bill.Name, "error", err)
		n.storeError(w, err)
		return
	}

	n.navigate(PathBills)
}

// assemble validates the field state and builds the draft bill.
// It returns a non-empty problem message instead of an error because
// validation failures stay inside the component.
func (n *NewBill) assemble(values FormValues, uploaded UploadedFile) (models.Bill, string) {
	if values.Date == "" {
		return models.Bill{}, "Indiquez la date de la dépense."
	}

	amount, err := strconv.Atoi(values.Amount)
	if err != nil || amount < 0 {
		return models.Bill{}, "Indiquez un montant valide."
	}

	pct := defaultPct
	if values.Pct != "" {
		pct, err = strconv.Atoi(values.Pct)
		if err != nil || pct < 0 || pct > 100 {
			return models.Bill{}, "Le pourcentage de TVA doit être compris entre 0 et 100."
		}
	}

	return models.Bill{
		Email:      n.email,
		Type:       values.Type,
		Name:       values.Name,
		Amount:     amount,
		Date:       values.Date,
		Vat:        values.Vat,
		Pct:        pct,
		Commentary: values.Commentary,
		FileURL:    uploaded.URL,
		FileName:   uploaded.Name,
		Key:        uploaded.Key,
		Status:     models.StatusPending,
	}, ""
}

// rerender writes the form back with the user's field state intact.
func (n *NewBill) rerender(w http.ResponseWriter, data NewBillPage) {
	if err := RenderNewBill(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// storeError surfaces a store rejection with the matching status. The
// component does not retry; the message is the store's own.
func (n *NewBill) storeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch {
	case storage.IsNotFound(err):
		status = http.StatusNotFound
	case storage.IsServerError(err):
		status = http.StatusInternalServerError
	}
	http.Error(w, err.Error(), status)
}

// readFormValues pulls the declared field inputs from the request.
func readFormValues(r *http.Request) FormValues {
	return FormValues{
		Type:       r.FormValue("expense-type"),
		Name:       r.FormValue("expense-name"),
		Date:       r.FormValue("datepicker"),
		Amount:     r.FormValue("amount"),
		Vat:        r.FormValue("vat"),
		Pct:        r.FormValue("pct"),
		Commentary: r.FormValue("commentary"),
	}
}
