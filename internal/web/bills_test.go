package web

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/billed-app/billed-web/internal/models"
	"github.com/billed-app/billed-web/internal/storage"
)

var fixtureBills = []models.Bill{
	{ID: "1", Type: "Hôtel et logement", Name: "encore", Date: "2004-04-04", Amount: 400, Status: models.StatusPending, FileURL: "https://test.storage/1.jpg"},
	{ID: "2", Type: "Transports", Name: "test1", Date: "2001-01-01", Amount: 100, Status: models.StatusRefused, FileURL: "https://test.storage/2.jpg"},
	{ID: "3", Type: "Services en ligne", Name: "test3", Date: "2003-03-03", Amount: 300, Status: models.StatusAccepted, FileURL: "https://test.storage/3.jpg"},
	{ID: "4", Type: "Restaurants et bars", Name: "test2", Date: "2002-02-02", Amount: 200, Status: models.StatusRefused, FileURL: "https://test.storage/4.jpg"},
}

func TestGetBillsSortsByDateDescending(t *testing.T) {
	bills := NewBills(&fakeStore{bills: fixtureBills})

	rows, err := bills.GetBills(context.Background())
	if err != nil {
		t.Fatalf("GetBills failed: %v", err)
	}
	if len(rows) != len(fixtureBills) {
		t.Fatalf("row count = %d, want %d", len(rows), len(fixtureBills))
	}

	dates := make([]string, len(rows))
	for i, r := range rows {
		dates[i] = r.RawDate
	}
	if !sort.SliceIsSorted(dates, func(i, j int) bool { return dates[i] > dates[j] }) {
		t.Errorf("dates not in descending order: %v", dates)
	}
	if dates[0] != "2004-04-04" || dates[len(dates)-1] != "2001-01-01" {
		t.Errorf("unexpected extremes: %v", dates)
	}
}

func TestBillsRenderPreservesCardinality(t *testing.T) {
	bills := NewBills(&fakeStore{bills: fixtureBills})

	doc := parsePage(t, renderToString(t, bills))
	if got := len(findByTestID(doc, "icon-eye")); got != len(fixtureBills) {
		t.Errorf("rendered %d rows, want %d", got, len(fixtureBills))
	}
}

func TestBillsRenderOrdersRowsNewestFirst(t *testing.T) {
	older := models.Bill{ID: "a", Date: "2004-04-04", Name: "older", Status: models.StatusPending}
	newer := models.Bill{ID: "b", Date: "2024-04-26", Name: "newer", Status: models.StatusPending}
	bills := NewBills(&fakeStore{bills: []models.Bill{older, newer}})

	page := renderToString(t, bills)
	if strings.Index(page, "newer") > strings.Index(page, "older") {
		t.Error(`"2004-04-04" should render after "2024-04-26"`)
	}
}

func TestBillsRenderFormatsDateAndStatus(t *testing.T) {
	bills := NewBills(&fakeStore{bills: []models.Bill{
		{ID: "1", Date: "2024-04-26", Status: models.StatusPending},
	}})

	doc := parsePage(t, renderToString(t, bills))
	if got := textContent(requireOneByTestID(t, doc, "bill-date")); got != "26 Avr. 24" {
		t.Errorf("date rendered as %q", got)
	}
	if got := textContent(requireOneByTestID(t, doc, "bill-status")); got != "En attente" {
		t.Errorf("status rendered as %q", got)
	}
}

func TestBillsRenderKeepsRawDateWhenUnparseable(t *testing.T) {
	bills := NewBills(&fakeStore{bills: []models.Bill{
		{ID: "1", Date: "not-a-date", Status: models.StatusPending},
	}})

	doc := parsePage(t, renderToString(t, bills))
	if got := textContent(requireOneByTestID(t, doc, "bill-date")); got != "not-a-date" {
		t.Errorf("corrupted date rendered as %q, want raw value", got)
	}
}

func TestBillsRenderEmptyListHasContainerWithoutRows(t *testing.T) {
	bills := NewBills(&fakeStore{})

	doc := parsePage(t, renderToString(t, bills))
	requireOneByTestID(t, doc, "tbody")
	if got := len(findByTestID(doc, "icon-eye")); got != 0 {
		t.Errorf("empty list rendered %d rows", got)
	}
}

func TestBillsRenderSurfacesStoreErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"not found", storage.NewStatusError(404), "Erreur 404"},
		{"server error", storage.NewStatusError(500), "Erreur 500"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			bills := NewBills(&fakeStore{listErr: c.err})

			doc := parsePage(t, renderToString(t, bills))
			msg := requireOneByTestID(t, doc, "error-message")
			if got := textContent(msg); !strings.Contains(got, c.want) {
				t.Errorf("error message %q should contain %q", got, c.want)
			}
		})
	}
}

func TestBillsRowAffordances(t *testing.T) {
	bills := NewBills(&fakeStore{bills: fixtureBills})
	doc := parsePage(t, renderToString(t, bills))

	t.Run("new bill button links to the creation path without a store call", func(t *testing.T) {
		btn := requireOneByTestID(t, doc, "btn-new-bill")
		if href, _ := attrVal(btn, "href"); href != "/"+PathNewBill {
			t.Errorf("btn-new-bill href = %q", href)
		}
	})

	t.Run("each eye icon carries its bill's attachment URL", func(t *testing.T) {
		eyes := findByTestID(doc, "icon-eye")
		if len(eyes) != len(fixtureBills) {
			t.Fatalf("found %d eye icons, want %d", len(eyes), len(fixtureBills))
		}
		for _, eye := range eyes {
			if eye.Data != "div" {
				t.Errorf("icon-eye rendered as <%s>, should not navigate", eye.Data)
			}
			if url, ok := attrVal(eye, "data-bill-url"); !ok || url == "" {
				t.Error("icon-eye missing data-bill-url")
			}
		}
	})

	t.Run("modal container is present", func(t *testing.T) {
		requireOneByTestID(t, doc, "modaleFile")
	})
}

func TestRenderBillsLoadingState(t *testing.T) {
	var sb strings.Builder
	if err := RenderBills(&sb, BillsPage{Loading: true}); err != nil {
		t.Fatalf("RenderBills failed: %v", err)
	}
	doc := parsePage(t, sb.String())
	requireOneByTestID(t, doc, "loading-message")
	if len(findByTestID(doc, "tbody")) != 0 {
		t.Error("loading state should not render the table")
	}
}
