package web

import (
	"context"
	"io"
	"sort"

	"github.com/billed-app/billed-web/internal/format"
	"github.com/billed-app/billed-web/internal/storage"
)

// Bills is the bill-list component. It fetches the session user's
// bills through the injected store, orders them newest first and
// renders the list page.
type Bills struct {
	store storage.BillStore
}

// NewBills returns a bill-list component over the given store.
func NewBills(store storage.BillStore) *Bills {
	return &Bills{store: store}
}

// GetBills retrieves the bills and shapes them into display rows,
// sorted by date descending. The date format is fixed-width and
// zero-padded, so the lexicographic comparison is a chronological
// order; equal-date ordering is unspecified. A row whose date does
// not parse keeps the raw string rather than failing the list.
func (b *Bills) GetBills(ctx context.Context) ([]BillRow, error) {
	bills, err := b.store.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]BillRow, 0, len(bills))
	for _, bill := range bills {
		display, err := format.Date(bill.Date)
		if err != nil {
			display = bill.Date
		}
		rows = append(rows, BillRow{
			Type:    bill.Type,
			Name:    bill.Name,
			Date:    display,
			RawDate: bill.Date,
			Amount:  bill.Amount,
			Status:  format.Status(bill.Status),
			FileURL: bill.FileURL,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].RawDate > rows[j].RawDate
	})
	return rows, nil
}

// Render writes the list page: rows on success, the store's own error
// message on failure. Store rejections become the page's error state,
// never a panic or an empty page.
func (b *Bills) Render(ctx context.Context, w io.Writer) error {
	rows, err := b.GetBills(ctx)
	if err != nil {
		return RenderBills(w, BillsPage{Error: err.Error()})
	}
	return RenderBills(w, BillsPage{Rows: rows})
}
