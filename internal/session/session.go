// Package session reads and writes the current-user session record.
//
// The record is issued by an external login service; this package only
// consumes it. It travels as a signed JWT in a cookie named "user",
// the same key the record lives under everywhere else.
package session

import (
	"errors"
	"net/http"

	"github.com/billed-app/billed-web/internal/models"
)

// CookieName is the key the session record is stored under.
const CookieName = "user"

var (
	// ErrNoSession means no session record is present. Callers treat
	// this as the unauthenticated state, not a failure.
	ErrNoSession = errors.New("no session record")

	// ErrInvalidToken means a record is present but cannot be trusted.
	ErrInvalidToken = errors.New("invalid or expired session token")
)

// Store is the session capability handed to views: opaque get/set of
// the serialized current-user record. Implementations are
// constructor-injected so tests can substitute an in-memory fake.
type Store interface {
	// Get returns the session record carried by the request, or
	// ErrNoSession / ErrInvalidToken.
	Get(r *http.Request) (*models.User, error)

	// Set writes the session record onto the response.
	Set(w http.ResponseWriter, user *models.User) error
}

// CookieStore implements Store with a signed JWT cookie.
type CookieStore struct {
	manager *JWTManager
}

// Ensure CookieStore implements Store
var _ Store = (*CookieStore)(nil)

// NewCookieStore returns a cookie-backed session store signing with
// the given manager.
func NewCookieStore(manager *JWTManager) *CookieStore {
	return &CookieStore{manager: manager}
}

// Get parses and validates the session cookie.
func (s *CookieStore) Get(r *http.Request) (*models.User, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, ErrNoSession
	}

	claims, err := s.manager.Validate(cookie.Value)
	if err != nil {
		return nil, err
	}
	return &models.User{Type: claims.UserType, Email: claims.Email}, nil
}

// Set signs the record and writes the session cookie.
func (s *CookieStore) Set(w http.ResponseWriter, user *models.User) error {
	token, err := s.manager.Generate(user)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
