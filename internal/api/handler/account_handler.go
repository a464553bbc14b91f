package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matespatagonicos/storefront/internal/core/domain"
	"github.com/matespatagonicos/storefront/internal/core/ports"
)

// AccountHandler serves registration, login and the admin user area.
type AccountHandler struct {
	stores ports.StoreFactory
}

func NewAccountHandler(stores ports.StoreFactory) *AccountHandler {
	return &AccountHandler{stores: stores}
}

// Register creates a client account. It does not log the caller in.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/auth/register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.stores.Accounts(clientID).Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toAccountResponse(*account))
}

// Login opens a session for the client.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := h.stores.Accounts(clientID).Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// Logout ends the client's session. Logging out twice is fine.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Router       /v1/auth/logout [post]
func (h *AccountHandler) Logout(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	if err := h.stores.Accounts(clientID).EndSession(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Session reports the client's current auth state.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Router       /v1/auth/session [get]
func (h *AccountHandler) Session(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	sess, _, err := h.stores.Accounts(clientID).CurrentSession(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// List handles GET /v1/accounts.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   accountResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	accounts, err := h.stores.Accounts(clientID).ListAccounts(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, toAccountResponse(a))
	}
	return c.JSON(http.StatusOK, resp)
}

// SetRole handles PATCH /v1/accounts/:id/role. When the caller changes its
// own account the session is refreshed so the new role applies at once.
//
// @Summary      Change an account role
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Account id"
// @Param        body  body      roleRequest  true  "New role"
// @Success      200   {object}  accountResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/accounts/{id}/role [patch]
func (h *AccountHandler) SetRole(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	accounts := h.stores.Accounts(clientID)
	account, err := accounts.SetRole(ctx, c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	if _, err := accounts.RefreshSessionIfCurrent(ctx, account.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(*account))
}

// Remove handles DELETE /v1/accounts/:id. Removing the caller's own account
// also ends its session.
//
// @Summary      Delete an account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/accounts/{id} [delete]
func (h *AccountHandler) Remove(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	accounts := h.stores.Accounts(clientID)
	if err := accounts.RemoveAccount(ctx, id); err != nil {
		return err
	}
	if sess := ctxSession(c); sess != nil && sess.ID == id {
		if err := accounts.EndSession(ctx); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "account deleted"})
}
