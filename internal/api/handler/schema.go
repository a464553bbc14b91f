package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/matespatagonicos/storefront/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Clients ---

type clientTokenResponse struct {
	Token     string    `json:"token"`
	ClientID  string    `json:"client_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// --- Catalog ---

type productRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"gte=0"`
	ImageURL    string  `json:"imageUrl"`
}

type productListResponse struct {
	Items []domain.Product `json:"items"`
	Count int              `json:"count"`
}

// --- Accounts ---

type registerRequest struct {
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=client admin"`
}

// accountResponse omits the stored password.
type accountResponse struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type sessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	IsAdmin       bool            `json:"is_admin"`
	User          *domain.Session `json:"user,omitempty"`
}

func toAccountResponse(a domain.Account) accountResponse {
	return accountResponse{ID: a.ID, Email: a.Email, Role: a.Role}
}

func toSessionResponse(s *domain.Session) sessionResponse {
	if s == nil {
		return sessionResponse{}
	}
	return sessionResponse{Authenticated: true, IsAdmin: s.IsAdmin(), User: s}
}

// --- Cart ---

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type cartResponse struct {
	Items     []domain.LineItem `json:"items"`
	Total     decimal.Decimal   `json:"total"`
	ItemCount int               `json:"item_count"`
}

func toCartResponse(items []domain.LineItem) cartResponse {
	if items == nil {
		items = []domain.LineItem{}
	}
	return cartResponse{
		Items:     items,
		Total:     domain.CartTotal(items),
		ItemCount: domain.CartItemCount(items),
	}
}
