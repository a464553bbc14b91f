package ports

import (
	"context"

	"github.com/matespatagonicos/storefront/internal/core/domain"
)

// AccountService owns the account collection and the session pointer of one client.
type AccountService interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	Register(ctx context.Context, email, password string) (*domain.Account, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Session, error)
	CurrentSession(ctx context.Context) (*domain.Session, bool, error)
	EndSession(ctx context.Context) error
	SetRole(ctx context.Context, userID string, role domain.Role) (*domain.Account, error)
	// RefreshSessionIfCurrent re-projects the session from its account when it
	// references userID, or ends it when that account no longer exists.
	// It reports whether the session was touched.
	RefreshSessionIfCurrent(ctx context.Context, userID string) (bool, error)
	RemoveAccount(ctx context.Context, userID string) error
}

// PasswordScheme encodes passwords for storage and checks candidates against them.
type PasswordScheme interface {
	Name() string
	Encode(password string) (string, error)
	Matches(stored, candidate string) bool
}
