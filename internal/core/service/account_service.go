package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/matespatagonicos/storefront/internal/core/domain"
	"github.com/matespatagonicos/storefront/internal/core/ports"
	"github.com/matespatagonicos/storefront/internal/pkg/metrics"
)

// AccountService implements simulated registration, login and role management.
// Accounts live in a shared slot; the session pointer lives in a client-scoped one.
type AccountService struct {
	accounts  slot[[]domain.Account]
	session   slot[domain.Session]
	passwords ports.PasswordScheme
	logger    zerolog.Logger
	now       func() time.Time
}

var _ ports.AccountService = (*AccountService)(nil)

func NewAccountService(shared, scoped ports.KeyValueStore, passwords ports.PasswordScheme, logger zerolog.Logger) *AccountService {
	if passwords == nil {
		passwords = PlaintextScheme{}
	}
	return &AccountService{
		accounts:  newSlot[[]domain.Account](shared, AccountsKey, "accounts", logger),
		session:   newSlot[domain.Session](scoped, SessionKey, "session", logger),
		passwords: passwords,
		logger:    logger,
		now:       time.Now,
	}
}

// ListAccounts returns every account, password field included, seeding the
// default admin and client accounts when the slot is absent or was corrupt.
func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, ok, err := s.accounts.load(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return accounts, nil
	}

	seed := domain.DefaultAccounts()
	for i := range seed {
		encoded, err := s.passwords.Encode(seed[i].Password)
		if err != nil {
			return nil, err
		}
		seed[i].Password = encoded
	}
	if err := s.accounts.save(ctx, seed); err != nil {
		return nil, err
	}
	metrics.SlotSeedsTotal.WithLabelValues("accounts").Inc()
	s.logger.Info().Int("count", len(seed)).Msg("accounts seeded")
	return seed, nil
}

// Register creates a client account. It does not open a session.
func (s *AccountService) Register(ctx context.Context, email, password string) (*domain.Account, error) {
	if email == "" || password == "" {
		metrics.RegistrationsTotal.WithLabelValues("missing_field").Inc()
		return nil, domain.ErrMissingField
	}

	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Email == email {
			metrics.RegistrationsTotal.WithLabelValues("duplicate_email").Inc()
			return nil, domain.ErrDuplicateEmail
		}
	}

	encoded, err := s.passwords.Encode(password)
	if err != nil {
		return nil, err
	}
	account := domain.Account{
		ID:       newID("user", s.now()),
		Email:    email,
		Password: encoded,
		Role:     domain.RoleClient,
	}
	if err := s.accounts.save(ctx, append(accounts, account)); err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", account.ID).Str("email", email).Msg("account registered")
	return &account, nil
}

// Authenticate opens a session for the first account matching email and
// password. Nothing is written on a mismatch.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.Session, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	for _, a := range accounts {
		if a.Email != email || !s.passwords.Matches(a.Password, password) {
			continue
		}
		sess := domain.SessionOf(a)
		if err := s.session.save(ctx, sess); err != nil {
			return nil, err
		}
		metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
		s.logger.Info().Str("user_id", a.ID).Str("role", string(a.Role)).Msg("session opened")
		return &sess, nil
	}

	metrics.AuthAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
	return nil, domain.ErrInvalidCredentials
}

// CurrentSession returns the persisted session, if any.
func (s *AccountService) CurrentSession(ctx context.Context) (*domain.Session, bool, error) {
	sess, ok, err := s.session.load(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	if sess.ID == "" {
		s.logger.Warn().Msg("discarding session without account id")
		return nil, false, s.session.clear(ctx)
	}
	return &sess, true, nil
}

// EndSession clears the session pointer. Ending an absent session is a no-op.
func (s *AccountService) EndSession(ctx context.Context) error {
	if err := s.session.clear(ctx); err != nil {
		return err
	}
	s.logger.Debug().Msg("session ended")
	return nil
}

// SetRole changes the role of an account. Any session that references the
// account keeps the old role until RefreshSessionIfCurrent is called.
func (s *AccountService) SetRole(ctx context.Context, userID string, role domain.Role) (*domain.Account, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOfAccount(accounts, userID)
	if i < 0 {
		return nil, domain.ErrAccountNotFound
	}

	accounts[i].Role = role
	if err := s.accounts.save(ctx, accounts); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Str("role", string(role)).Msg("account role changed")
	a := accounts[i]
	return &a, nil
}

func (s *AccountService) RefreshSessionIfCurrent(ctx context.Context, userID string) (bool, error) {
	sess, ok, err := s.CurrentSession(ctx)
	if err != nil || !ok || sess.ID != userID {
		return false, err
	}

	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return false, err
	}
	i := indexOfAccount(accounts, userID)
	if i < 0 {
		return true, s.EndSession(ctx)
	}

	if err := s.session.save(ctx, domain.SessionOf(accounts[i])); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveAccount deletes an account. The session pointer is not touched.
func (s *AccountService) RemoveAccount(ctx context.Context, userID string) error {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return err
	}
	i := indexOfAccount(accounts, userID)
	if i < 0 {
		return domain.ErrAccountNotFound
	}

	accounts = append(accounts[:i], accounts[i+1:]...)
	if err := s.accounts.save(ctx, accounts); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Msg("account removed")
	return nil
}

func indexOfAccount(accounts []domain.Account, id string) int {
	for i, a := range accounts {
		if a.ID == id {
			return i
		}
	}
	return -1
}
