package models

// User types stored in the session record.
const (
	TypeEmployee = "Employee"
	TypeAdmin    = "Admin"
)

// User is the session record describing the currently acting user.
// It is issued elsewhere (login service) and only consumed here; the
// client persists it under the key "user" and treats its absence as
// the unauthenticated state.
type User struct {
	// Type is either TypeEmployee or TypeAdmin.
	Type string `json:"type"`

	// Email is the user's identifier, also stamped on every bill the
	// user submits.
	Email string `json:"email"`
}

// IsEmployee reports whether the record describes an employee session.
func (u *User) IsEmployee() bool {
	return u != nil && u.Type == TypeEmployee
}
