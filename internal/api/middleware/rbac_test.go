package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/matespatagonicos/storefront/internal/core/domain"
)

func lookupReturning(sess *domain.Session, err error) SessionLookup {
	return func(_ context.Context, clientID string) (*domain.Session, bool, error) {
		if err != nil {
			return nil, false, err
		}
		return sess, sess != nil, nil
	}
}

func newRBACContext(clientID string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if clientID != "" {
		c.Set(ClientIDKey, clientID)
	}
	return e, c, rec
}

func TestRBAC_Allows(t *testing.T) {
	_, c, rec := newRBACContext("c1")
	sess := &domain.Session{ID: "user-admin-123", Email: "admin@test.com", Role: domain.RoleAdmin}

	called := false
	mw := RBAC(lookupReturning(sess, nil), domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(SessionKey) != sess {
			t.Fatalf("session not injected")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_AnySessionWhenNoRoles(t *testing.T) {
	_, c, rec := newRBACContext("c1")
	sess := &domain.Session{ID: "u", Role: domain.RoleClient}

	handler := RBAC(lookupReturning(sess, nil))(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	e, c, rec := newRBACContext("c1")
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if errors.Is(err, domain.ErrForbidden) {
			_ = c.NoContent(http.StatusForbidden)
		}
	}
	sess := &domain.Session{ID: "user-client-123", Role: domain.RoleClient}

	handler := RBAC(lookupReturning(sess, nil), domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	e.HTTPErrorHandler(err, c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_NoSession(t *testing.T) {
	e, c, rec := newRBACContext("c1")

	handler := RBAC(lookupReturning(nil, nil), domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRBAC_MissingClient(t *testing.T) {
	e, c, rec := newRBACContext("")

	handler := RBAC(lookupReturning(&domain.Session{Role: domain.RoleAdmin}, nil))(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRBAC_LookupError(t *testing.T) {
	_, c, _ := newRBACContext("c1")
	boom := errors.New("kv down")

	handler := RBAC(lookupReturning(nil, boom))(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}
