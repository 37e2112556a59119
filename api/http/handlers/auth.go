package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hirezy/backend/api/http/presenter"
	"github.com/hirezy/backend/pkg/account"
	"github.com/hirezy/backend/pkg/observability/metrics"
)

// TokenGenerator abstracts token creation (e.g. JWT) so handlers stay
// framework-agnostic about the signing scheme.
type TokenGenerator interface {
	Generate(ctx context.Context, acc account.Account) (string, error)
}

type AuthHandler struct {
	useCase account.UseCase
	tokens  TokenGenerator
}

func NewAuthHandler(useCase account.UseCase, tokens TokenGenerator) *AuthHandler {
	return &AuthHandler{useCase: useCase, tokens: tokens}
}

type registerRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=User HR"`
	Industry string `json:"industry"`
}

// Register handles self-service registration as User or HR.
// @Summary Register an account
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} accountResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validateStruct(req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}

	acc, err := h.useCase.Register(c.Context(), account.RegisterInput{
		FullName: strings.TrimSpace(req.FullName),
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Role:     account.Role(req.Role),
		Industry: account.Industry(req.Industry),
	})
	if err != nil {
		status, msg := statusFor(err)
		return presenter.Error(c, status, msg)
	}

	metrics.RegistrationsTotal.WithLabelValues(string(acc.Role)).Inc()
	return presenter.JSON(c, http.StatusCreated, toAccountResponse(acc))
}

type loginRequest struct {
	// Identifier is a username or an email, accepted interchangeably.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type loginResponse struct {
	Account accountResponse `json:"account"`
	Token   string          `json:"token"`
}

// Login authenticates by username or email and returns a signed token.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} loginResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validateStruct(req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}

	acc, err := h.useCase.Authenticate(c.Context(), strings.TrimSpace(req.Identifier), req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("denied").Inc()
		status, msg := statusFor(err)
		return presenter.Error(c, status, msg)
	}

	token, err := h.tokens.Generate(c.Context(), acc)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to issue token")
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return presenter.JSON(c, http.StatusOK, loginResponse{
		Account: toAccountResponse(acc),
		Token:   token,
	})
}

// UsernameAvailable is the advisory pre-submission probe. The unique
// constraint at insert time remains the actual guarantee.
// @Summary Check username availability
// @Tags    auth
// @Produce json
// @Param   username query string true "username to probe"
// @Success 200 {object} map[string]bool
// @Router  /auth/username-available [get]
func (h *AuthHandler) UsernameAvailable(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		return presenter.Error(c, http.StatusBadRequest, "username is required")
	}
	exists, err := h.useCase.UsernameExists(c.Context(), username)
	if err != nil {
		status, msg := statusFor(err)
		return presenter.Error(c, status, msg)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"available": !exists})
}

// EmailAvailable reports whether the email is well-formed and unused.
// With role=HR it additionally rejects free-mail domains.
// @Summary Check email availability
// @Tags    auth
// @Produce json
// @Param   email query string true "email to probe"
// @Param   role  query string false "intended role (HR tightens the check)"
// @Success 200 {object} map[string]bool
// @Router  /auth/email-available [get]
func (h *AuthHandler) EmailAvailable(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return presenter.Error(c, http.StatusBadRequest, "email is required")
	}
	if !account.ValidEmail(email) {
		return presenter.JSON(c, http.StatusOK, fiber.Map{"available": false})
	}
	if c.Query("role") == string(account.RoleHR) && !account.CompanyEmail(email) {
		return presenter.JSON(c, http.StatusOK, fiber.Map{"available": false})
	}
	exists, err := h.useCase.EmailExists(c.Context(), email)
	if err != nil {
		status, msg := statusFor(err)
		return presenter.Error(c, status, msg)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"available": !exists})
}
