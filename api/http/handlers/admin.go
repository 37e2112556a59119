package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hirezy/backend/api/http/presenter"
	"github.com/hirezy/backend/pkg/account"
	"github.com/hirezy/backend/pkg/observability/metrics"
)

// AdminHandler serves the admin account-management endpoints.
type AdminHandler struct {
	useCase account.UseCase
}

func NewAdminHandler(useCase account.UseCase) *AdminHandler {
	return &AdminHandler{useCase: useCase}
}

// List returns accounts of one role, newest registration first. The q
// parameter filters by substring over name, username, email and industry.
// @Summary  List accounts by role
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Param    role query string true  "Admin, HR or User"
// @Param    q    query string false "search filter"
// @Success 200 {array}  accountResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /admin/accounts [get]
func (h *AdminHandler) List(c *fiber.Ctx) error {
	role := account.Role(c.Query("role"))
	if !account.ValidRole(role) {
		return presenter.Error(c, http.StatusBadRequest, "role must be one of: Admin, HR, User")
	}
	accounts, err := h.useCase.ListByRole(c.Context(), role, strings.TrimSpace(c.Query("q")))
	if err != nil {
		status, msg := statusFor(err)
		return presenter.Error(c, status, msg)
	}
	res := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		res = append(res, toAccountResponse(a))
	}
	return presenter.JSON(c, http.StatusOK, res)
}

type registerHRRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerHRResponse struct {
	Account accountResponse `json:"account"`
	// Password echoes the chosen credential exactly once at registration
	// time so the admin can hand it over; it is never readable again.
	Password string `json:"password"`
}

// RegisterHR registers an HR account on behalf of an admin.
// @Summary  Register an HR account
// @Tags     admin
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    input body registerHRRequest true "HR registration payload"
// @Success 201 {object} registerHRResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /admin/accounts [post]
func (h *AdminHandler) RegisterHR(c *fiber.Ctx) error {
	var req registerHRRequest
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
		Role:     account.RoleHR,
	})
	if err != nil {
		status, msg := statusFor(err)
		return presenter.Error(c, status, msg)
	}

	metrics.RegistrationsTotal.WithLabelValues(string(account.RoleHR)).Inc()
	return presenter.JSON(c, http.StatusCreated, registerHRResponse{
		Account:  toAccountResponse(acc),
		Password: req.Password,
	})
}

type updateAccountRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Industry string `json:"industry"`
}

// Update applies a partial update to any account by id.
// @Summary  Update an account
// @Tags     admin
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id    path int                  true "account id"
// @Param    input body updateAccountRequest true "fields to change"
// @Success 204
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /admin/accounts/{id} [put]
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return presenter.Error(c, http.StatusBadRequest, "invalid account id")
	}
	var req updateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	in := account.UpdateInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Industry != "" {
		ind := account.Industry(req.Industry)
		in.Industry = &ind
	}
	if err := h.useCase.Update(c.Context(), int64(id), in); err != nil {
		status, msg := statusFor(err)
		return presenter.Error(c, status, msg)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Delete removes an account by id. Deleting a missing id is a no-op.
// @Summary  Delete an account
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Param    id path int true "account id"
// @Success 204
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /admin/accounts/{id} [delete]
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return presenter.Error(c, http.StatusBadRequest, "invalid account id")
	}
	if err := h.useCase.Delete(c.Context(), int64(id)); err != nil {
		status, msg := statusFor(err)
		return presenter.Error(c, status, msg)
	}
	return c.SendStatus(http.StatusNoContent)
}
