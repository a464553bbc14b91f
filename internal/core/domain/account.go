package domain

// Role gates access to admin-only operations.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// Account is a registered user. Password holds whatever the configured
// password scheme stores: the plaintext itself or a bcrypt hash.
type Account struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Session is the projection of an Account held in the session slot.
// It goes stale if the backing account changes; see RefreshSessionIfCurrent.
type Session struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// SessionOf projects an account into a session, dropping the password.
func SessionOf(a Account) Session {
	return Session{ID: a.ID, Email: a.Email, Role: a.Role}
}

// IsAdmin reports whether the session grants access to admin views.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// DefaultAccounts returns the accounts seeded on first access, with
// passwords in plaintext. Callers encode them before persisting.
func DefaultAccounts() []Account {
	return []Account{
		{ID: "user-admin-123", Email: "admin@test.com", Password: "123", Role: RoleAdmin},
		{ID: "user-client-123", Email: "cliente@test.com", Password: "123", Role: RoleClient},
	}
}
