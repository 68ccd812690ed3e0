package web

import (
	"bytes"
	"net/http"

	"github.com/billed-app/billed-web/internal/session"
)

// App mounts the router and the form endpoints on an http.ServeMux.
// It owns nothing global: sessions and the store factory are injected.
type App struct {
	router   *Router
	sessions session.Store
	newStore StoreFactory
}

// NewApp wires the employee web application.
func NewApp(sessions session.Store, newStore StoreFactory) *App {
	return &App{
		router:   NewRouter(sessions, newStore),
		sessions: sessions,
		newStore: newStore,
	}
}

// Handler returns the application's HTTP handler.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		// Default landing for an employee session.
		http.Redirect(w, r, "/"+PathBills, http.StatusSeeOther)
	})
	mux.HandleFunc("GET /"+PathBills, a.serveView(PathBills))
	mux.HandleFunc("GET /"+PathNewBill, a.serveView(PathNewBill))
	mux.HandleFunc("GET /"+PathLogin, a.serveView(PathLogin))

	mux.HandleFunc("POST /"+PathNewBill+"/file", a.withNewBill((*NewBill).HandleChangeFile))
	mux.HandleFunc("POST /"+PathNewBill, a.withNewBill((*NewBill).HandleSubmit))

	return mux
}

// serveView resolves the logical path through the router and writes
// the rendered view. Rendering goes through a buffer so a failure can
// still become a clean 500 instead of a half-written page.
func (a *App) serveView(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := a.router.Resolve(r, path, redirectNavigate(w, r))
		if view == nil {
			http.NotFound(w, r)
			return
		}

		var buf bytes.Buffer
		if err := view.Render(r.Context(), &buf); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		buf.WriteTo(w)
	}
}

// withNewBill gates a form endpoint on the session and builds the
// creation component for the session user.
func (a *App) withNewBill(method func(n *NewBill, w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := a.sessions.Get(r)
		if err != nil || !user.IsEmployee() {
			http.Redirect(w, r, "/"+PathLogin, http.StatusSeeOther)
			return
		}
		n := NewNewBill(a.newStore(user.Email), user.Email, redirectNavigate(w, r))
		method(n, w, r)
	}
}

// redirectNavigate implements Navigate as an HTTP redirect.
func redirectNavigate(w http.ResponseWriter, r *http.Request) Navigate {
	return func(path string) {
		http.Redirect(w, r, "/"+path, http.StatusSeeOther)
	}
}
