// Package web implements the employee-facing views of the Billed
// client: the router, the bill list and the new-bill form.
package web

import (
	"context"
	"io"
	"net/http"

	"github.com/billed-app/billed-web/internal/models"
	"github.com/billed-app/billed-web/internal/session"
	"github.com/billed-app/billed-web/internal/storage"
)

// Logical navigation paths. The HTTP layer serves each under "/"+path.
const (
	PathBills   = "employee/bills"
	PathNewBill = "employee/bill/new"
	PathLogin   = "login"
)

// Navigate is the injected navigation callback handed to views. The
// HTTP layer implements it as a redirect; tests can capture it.
type Navigate func(path string)

// View renders one page.
type View interface {
	Render(ctx context.Context, w io.Writer) error
}

// ViewDeps carries everything a view factory receives: the session
// user, a store scoped to that user, and the navigation callback.
type ViewDeps struct {
	User     *models.User
	Store    storage.BillStore
	Navigate Navigate
}

// ViewFactory builds a view from its dependencies.
type ViewFactory func(d ViewDeps) View

// StoreFactory builds a BillStore scoped to one employee's email.
type StoreFactory func(email string) storage.BillStore

// Router maps a logical path to a view, gating on the session record.
// There is no process-wide navigation function; each Router instance
// owns its table and its injected capabilities.
type Router struct {
	sessions session.Store
	newStore StoreFactory
	routes   map[string]ViewFactory
}

// NewRouter builds the router with its fixed route table.
func NewRouter(sessions session.Store, newStore StoreFactory) *Router {
	r := &Router{sessions: sessions, newStore: newStore}
	r.routes = map[string]ViewFactory{
		PathBills: func(d ViewDeps) View {
			return NewBills(d.Store)
		},
		PathNewBill: func(d ViewDeps) View {
			return NewNewBill(d.Store, d.User.Email, d.Navigate)
		},
		PathLogin: func(d ViewDeps) View {
			return loginView{}
		},
	}
	return r
}

// Resolve translates a requested path into the view to render.
// An unknown path resolves to nil (a no-op, not an error). A missing
// or invalid session record resolves every known path to the login
// view; that is policy, not a failure.
func (rt *Router) Resolve(req *http.Request, path string, navigate Navigate) View {
	factory, ok := rt.routes[path]
	if !ok {
		return nil
	}

	user, err := rt.sessions.Get(req)
	if err != nil || !user.IsEmployee() {
		return loginView{}
	}

	return factory(ViewDeps{
		User:     user,
		Store:    rt.newStore(user.Email),
		Navigate: navigate,
	})
}

// loginView is the fallback rendered whenever no trusted session
// record exists. Credential issuance happens elsewhere; this view only
// renders.
type loginView struct{}

func (loginView) Render(_ context.Context, w io.Writer) error {
	return RenderLogin(w)
}
