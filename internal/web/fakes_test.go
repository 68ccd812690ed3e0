package web

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/billed-app/billed-web/internal/models"
	"github.com/billed-app/billed-web/internal/session"
	"github.com/billed-app/billed-web/internal/storage"
)

// fakeStore is an in-memory BillStore recording every call, injected
// where the real store would be.
type fakeStore struct {
	bills []models.Bill

	listErr   error
	createErr error
	updateErr error

	createCalls int
	updateCalls int

	lastUpload     storage.FileUpload
	lastUploadName string
	lastUpdate     models.Bill

	ref storage.FileRef
}

func (f *fakeStore) List(ctx context.Context) ([]models.Bill, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.bills, nil
}

func (f *fakeStore) CreateFile(ctx context.Context, upload storage.FileUpload) (storage.FileRef, error) {
	f.createCalls++
	f.lastUpload = upload
	f.lastUploadName = upload.FileName
	if f.createErr != nil {
		return storage.FileRef{}, f.createErr
	}
	if f.ref == (storage.FileRef{}) {
		f.ref = storage.FileRef{FileURL: "http://store/files/key-1.png", Key: "key-1.png"}
	}
	return f.ref, nil
}

func (f *fakeStore) Update(ctx context.Context, bill models.Bill) (models.Bill, error) {
	f.updateCalls++
	f.lastUpdate = bill
	if f.updateErr != nil {
		return models.Bill{}, f.updateErr
	}
	stored := bill
	if stored.ID == "" {
		stored.ID = "stored-1"
	}
	return stored, nil
}

// fakeSessions is an in-memory session.Store.
type fakeSessions struct {
	user *models.User
	err  error
}

func (f *fakeSessions) Get(*http.Request) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.user == nil {
		return nil, session.ErrNoSession
	}
	return f.user, nil
}

func (f *fakeSessions) Set(_ http.ResponseWriter, user *models.User) error {
	f.user = user
	return nil
}

func employeeSessions() *fakeSessions {
	return &fakeSessions{user: &models.User{Type: models.TypeEmployee, Email: "employee@test.tld"}}
}

// Rendered-page helpers built on x/net/html, the integration surface
// being the DOM test hooks the views promise to carry.

func parsePage(t *testing.T, page string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("failed to parse rendered page: %v", err)
	}
	return doc
}

func attrVal(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// findByTestID returns every element whose data-testid equals id, in
// document order.
func findByTestID(n *html.Node, id string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			if v, ok := attrVal(node, "data-testid"); ok && v == id {
				found = append(found, node)
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func requireOneByTestID(t *testing.T, doc *html.Node, id string) *html.Node {
	t.Helper()
	nodes := findByTestID(doc, id)
	if len(nodes) != 1 {
		t.Fatalf("expected exactly one %q element, found %d", id, len(nodes))
	}
	return nodes[0]
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attrVal(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func renderToString(t *testing.T, v View) string {
	t.Helper()
	var sb strings.Builder
	if err := v.Render(context.Background(), &sb); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return sb.String()
}
