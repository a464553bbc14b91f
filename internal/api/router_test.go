package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/matespatagonicos/storefront/internal/core/service"
	"github.com/matespatagonicos/storefront/internal/infrastructure/kv"
)

const testSecret = "test-secret"

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := kv.NewMemory()
	reg := prometheus.NewRegistry()
	e := NewRouter(Deps{
		Stores:         service.NewFactory(store, kv.ForClient, nil, 0, zerolog.Nop()),
		KV:             store,
		Backend:        "memory",
		JWTSecret:      testSecret,
		ClientTokenTTL: time.Hour,
		Logger:         zerolog.Nop(),
		Registerer:     reg,
		Gatherer:       reg,
	})
	return &testServer{t: t, e: e}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) newClient() string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/v1/clients", "", nil)
	if rec.Code != http.StatusCreated {
		s.t.Fatalf("expected 201 creating client, got %d: %s", rec.Code, rec.Body)
	}
	var resp struct {
		Token    string `json:"token"`
		ClientID string `json:"client_id"`
	}
	decode(s.t, rec, &resp)
	if resp.Token == "" || resp.ClientID == "" {
		s.t.Fatalf("incomplete client token response: %s", rec.Body)
	}
	return resp.Token
}

func (s *testServer) login(token, email, password string) {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/v1/auth/login", token, map[string]string{"email": email, "password": password})
	if rec.Code != http.StatusOK {
		s.t.Fatalf("login %s: expected 200, got %d: %s", email, rec.Code, rec.Body)
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body)
	}
}

type cartBody struct {
	Items []struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
	Total     string `json:"total"`
	ItemCount int    `json:"item_count"`
}

func TestRouter_ProductsArePublic(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/v1/products", "", nil)
	expectStatus(t, rec, http.StatusOK)
	var list struct {
		Count int `json:"count"`
	}
	decode(t, rec, &list)
	if list.Count != 6 {
		t.Fatalf("expected 6 seeded products, got %d", list.Count)
	}

	expectStatus(t, s.do(http.MethodGet, "/v1/products/prod-1", "", nil), http.StatusOK)
	expectStatus(t, s.do(http.MethodGet, "/v1/products/nope", "", nil), http.StatusNotFound)
}

func TestRouter_ClientTokenRequired(t *testing.T) {
	s := newTestServer(t)

	expectStatus(t, s.do(http.MethodGet, "/v1/cart", "", nil), http.StatusUnauthorized)
	expectStatus(t, s.do(http.MethodGet, "/v1/cart", "not-a-jwt", nil), http.StatusUnauthorized)
}

func TestRouter_ShoppingFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.newClient()

	expectStatus(t, s.do(http.MethodPost, "/v1/cart/items", token, map[string]string{"product_id": "prod-2"}), http.StatusUnauthorized)

	s.login(token, "cliente@test.com", "123")

	expectStatus(t, s.do(http.MethodPost, "/v1/cart/items", token, map[string]string{"product_id": "prod-2"}), http.StatusOK)
	rec := s.do(http.MethodPost, "/v1/cart/items", token, map[string]string{"product_id": "prod-2"})
	expectStatus(t, rec, http.StatusOK)

	var cart cartBody
	decode(t, rec, &cart)
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 || cart.Total != "16000" || cart.ItemCount != 2 {
		t.Fatalf("unexpected cart: %+v", cart)
	}

	expectStatus(t, s.do(http.MethodPost, "/v1/cart/items", token, map[string]string{"product_id": "prod-404"}), http.StatusNotFound)

	rec = s.do(http.MethodPut, "/v1/cart/items/prod-2", token, map[string]int{"quantity": 3})
	expectStatus(t, rec, http.StatusOK)
	decode(t, rec, &cart)
	if cart.Total != "24000" {
		t.Fatalf("expected total 24000, got %s", cart.Total)
	}

	rec = s.do(http.MethodPost, "/v1/checkout", token, nil)
	expectStatus(t, rec, http.StatusCreated)
	var order struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		Total     string `json:"total"`
		ItemCount int    `json:"item_count"`
	}
	decode(t, rec, &order)
	if !strings.HasPrefix(order.ID, "order-") || order.Email != "cliente@test.com" || order.Total != "24000" || order.ItemCount != 3 {
		t.Fatalf("unexpected order: %+v", order)
	}

	rec = s.do(http.MethodGet, "/v1/cart", token, nil)
	expectStatus(t, rec, http.StatusOK)
	decode(t, rec, &cart)
	if len(cart.Items) != 0 || cart.Total != "0" {
		t.Fatalf("expected empty cart after checkout, got %+v", cart)
	}

	expectStatus(t, s.do(http.MethodPost, "/v1/checkout", token, nil), http.StatusUnprocessableEntity)
}

func TestRouter_CartsAreIsolatedPerClient(t *testing.T) {
	s := newTestServer(t)
	alice, bob := s.newClient(), s.newClient()

	s.login(alice, "cliente@test.com", "123")
	expectStatus(t, s.do(http.MethodPost, "/v1/cart/items", alice, map[string]string{"product_id": "prod-1"}), http.StatusOK)

	var cart cartBody
	decode(t, s.do(http.MethodGet, "/v1/cart", bob, nil), &cart)
	if len(cart.Items) != 0 {
		t.Fatalf("bob sees alice's cart: %+v", cart)
	}

	var sess struct {
		Authenticated bool `json:"authenticated"`
	}
	decode(t, s.do(http.MethodGet, "/v1/auth/session", bob, nil), &sess)
	if sess.Authenticated {
		t.Fatal("bob sees alice's session")
	}
}

func TestRouter_Register(t *testing.T) {
	s := newTestServer(t)
	token := s.newClient()

	body := map[string]string{"email": "nuevo@test.com", "password": "secreto", "confirm_password": "secreto"}
	expectStatus(t, s.do(http.MethodPost, "/v1/auth/register", token, body), http.StatusCreated)
	expectStatus(t, s.do(http.MethodPost, "/v1/auth/register", token, body), http.StatusConflict)

	long := strings.Repeat("x", 73)
	tooLong := map[string]string{"email": "largo@test.com", "password": long, "confirm_password": long}
	expectStatus(t, s.do(http.MethodPost, "/v1/auth/register", token, tooLong), http.StatusBadRequest)

	mismatch := map[string]string{"email": "otro@test.com", "password": "secreto", "confirm_password": "distinto"}
	expectStatus(t, s.do(http.MethodPost, "/v1/auth/register", token, mismatch), http.StatusBadRequest)

	var sess struct {
		Authenticated bool `json:"authenticated"`
	}
	decode(t, s.do(http.MethodGet, "/v1/auth/session", token, nil), &sess)
	if sess.Authenticated {
		t.Fatal("register must not log in")
	}

	s.login(token, "nuevo@test.com", "secreto")
	expectStatus(t, s.do(http.MethodPost, "/v1/auth/login", token, map[string]string{"email": "nuevo@test.com", "password": "wrong"}), http.StatusUnauthorized)
}

func TestRouter_AdminCatalog(t *testing.T) {
	s := newTestServer(t)
	token := s.newClient()
	product := map[string]any{"name": "Yerba Organica", "description": "1kg", "price": 4500}

	expectStatus(t, s.do(http.MethodPost, "/v1/products", token, product), http.StatusUnauthorized)

	s.login(token, "cliente@test.com", "123")
	expectStatus(t, s.do(http.MethodPost, "/v1/products", token, product), http.StatusForbidden)

	s.login(token, "admin@test.com", "123")
	rec := s.do(http.MethodPost, "/v1/products", token, product)
	expectStatus(t, rec, http.StatusCreated)
	var created struct {
		ID    string  `json:"id"`
		Price float64 `json:"price"`
	}
	decode(t, rec, &created)

	expectStatus(t, s.do(http.MethodPost, "/v1/products", token, map[string]any{"price": 1}), http.StatusUnprocessableEntity)

	path := "/v1/products/" + created.ID
	expectStatus(t, s.do(http.MethodPatch, path, token, `{"price": 5000, "stock": 3}`), http.StatusBadRequest)
	expectStatus(t, s.do(http.MethodPatch, path, token, `{}`), http.StatusBadRequest)
	expectStatus(t, s.do(http.MethodPatch, "/v1/products/nope", token, `{"price": 1}`), http.StatusNotFound)

	rec = s.do(http.MethodPatch, path, token, `{"price": 5000}`)
	expectStatus(t, rec, http.StatusOK)
	decode(t, rec, &created)
	if created.Price != 5000 {
		t.Fatalf("expected price 5000, got %v", created.Price)
	}

	rec = s.do(http.MethodDelete, path, token, nil)
	expectStatus(t, rec, http.StatusOK)
	var list struct {
		Count int `json:"count"`
	}
	decode(t, rec, &list)
	if list.Count != 6 {
		t.Fatalf("expected 6 products after delete, got %d", list.Count)
	}
	expectStatus(t, s.do(http.MethodDelete, path, token, nil), http.StatusOK)
}

func TestRouter_AdminAccounts(t *testing.T) {
	s := newTestServer(t)
	token := s.newClient()
	s.login(token, "admin@test.com", "123")

	rec := s.do(http.MethodGet, "/v1/accounts", token, nil)
	expectStatus(t, rec, http.StatusOK)
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("account listing leaks passwords: %s", rec.Body)
	}

	expectStatus(t, s.do(http.MethodPatch, "/v1/accounts/user-client-123/role", token, map[string]string{"role": "root"}), http.StatusUnprocessableEntity)
	expectStatus(t, s.do(http.MethodPatch, "/v1/accounts/ghost/role", token, map[string]string{"role": "admin"}), http.StatusNotFound)
	expectStatus(t, s.do(http.MethodPatch, "/v1/accounts/user-client-123/role", token, map[string]string{"role": "admin"}), http.StatusOK)

	// Demoting yourself takes effect at once.
	expectStatus(t, s.do(http.MethodPatch, "/v1/accounts/user-admin-123/role", token, map[string]string{"role": "client"}), http.StatusOK)
	expectStatus(t, s.do(http.MethodGet, "/v1/accounts", token, nil), http.StatusForbidden)

	// The promoted client can now remove itself, which ends its session.
	s.login(token, "cliente@test.com", "123")
	expectStatus(t, s.do(http.MethodDelete, "/v1/accounts/user-client-123", token, nil), http.StatusOK)
	var sess struct {
		Authenticated bool `json:"authenticated"`
	}
	decode(t, s.do(http.MethodGet, "/v1/auth/session", token, nil), &sess)
	if sess.Authenticated {
		t.Fatal("removing your own account must end the session")
	}
}

func TestRouter_Logout(t *testing.T) {
	s := newTestServer(t)
	token := s.newClient()
	s.login(token, "cliente@test.com", "123")

	expectStatus(t, s.do(http.MethodPost, "/v1/auth/logout", token, nil), http.StatusOK)
	expectStatus(t, s.do(http.MethodPost, "/v1/auth/logout", token, nil), http.StatusOK)
	expectStatus(t, s.do(http.MethodPost, "/v1/checkout", token, nil), http.StatusUnauthorized)
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	expectStatus(t, s.do(http.MethodGet, "/health", "", nil), http.StatusOK)

	rec := s.do(http.MethodGet, "/health/ready", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"memory"`) {
		t.Fatalf("readiness must report the backend: %s", rec.Body)
	}

	expectStatus(t, s.do(http.MethodGet, "/metrics", "", nil), http.StatusOK)
}

var errRefused = errors.New("connection refused")

// downKV is a backend that refuses every call.
type downKV struct{}

func (downKV) Get(context.Context, string) (string, bool, error) { return "", false, errRefused }
func (downKV) Set(context.Context, string, string) error         { return errRefused }
func (downKV) Delete(context.Context, string) error              { return errRefused }
func (downKV) Ping(context.Context) error                        { return errRefused }

func TestRouter_ReadinessDegraded(t *testing.T) {
	store := downKV{}
	reg := prometheus.NewRegistry()
	e := NewRouter(Deps{
		Stores:     service.NewFactory(store, kv.ForClient, nil, 0, zerolog.Nop()),
		KV:         store,
		Backend:    "redis",
		JWTSecret:  testSecret,
		Logger:     zerolog.Nop(),
		Registerer: reg,
		Gatherer:   reg,
	})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	expectStatus(t, rec, http.StatusServiceUnavailable)
	if !strings.Contains(rec.Body.String(), "degraded") {
		t.Fatalf("expected degraded status: %s", rec.Body)
	}
}

func TestRouter_NullSessionIsRejected(t *testing.T) {
	store := kv.NewMemory()
	reg := prometheus.NewRegistry()
	s := &testServer{t: t, e: NewRouter(Deps{
		Stores:         service.NewFactory(store, kv.ForClient, nil, 0, zerolog.Nop()),
		KV:             store,
		Backend:        "memory",
		JWTSecret:      testSecret,
		ClientTokenTTL: time.Hour,
		Logger:         zerolog.Nop(),
		Registerer:     reg,
		Gatherer:       reg,
	})}

	rec := s.do(http.MethodPost, "/v1/clients", "", nil)
	expectStatus(t, rec, http.StatusCreated)
	var client struct {
		Token    string `json:"token"`
		ClientID string `json:"client_id"`
	}
	decode(t, rec, &client)

	_ = kv.ForClient(store, client.ClientID).Set(context.Background(), service.SessionKey, `null`)

	expectStatus(t, s.do(http.MethodPost, "/v1/cart/items", client.Token, map[string]string{"product_id": "prod-1"}), http.StatusUnauthorized)
	expectStatus(t, s.do(http.MethodPost, "/v1/checkout", client.Token, nil), http.StatusUnauthorized)
}
