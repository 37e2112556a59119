package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hirezy/backend/api/http/presenter"
	"github.com/hirezy/backend/pkg/account"
	"github.com/hirezy/backend/pkg/security/jwt"
)

// ProfileHandler serves the authenticated account's own profile.
type ProfileHandler struct {
	useCase account.UseCase
}

func NewProfileHandler(useCase account.UseCase) *ProfileHandler {
	return &ProfileHandler{useCase: useCase}
}

// Get returns the caller's account.
// @Summary  Own profile
// @Tags     profile
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} accountResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	id, ok := jwt.AccountID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	acc, err := h.useCase.GetByID(c.Context(), id)
	if err != nil {
		status, msg := statusFor(err)
		return presenter.Error(c, status, msg)
	}
	return presenter.JSON(c, http.StatusOK, toAccountResponse(acc))
}

type updateProfileRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	// Optional: omit to keep the current password.
	Password string `json:"password"`
	// Optional, Users only: omit to keep the current industry.
	Industry string `json:"industry"`
}

// Update applies a partial update to the caller's account. Omitted fields
// stay unchanged.
// @Summary  Update own profile
// @Tags     profile
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    input body updateProfileRequest true "fields to change"
// @Success 200 {object} accountResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /profile [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	id, ok := jwt.AccountID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	var req updateProfileRequest
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
	if err := h.useCase.Update(c.Context(), id, in); err != nil {
		status, msg := statusFor(err)
		return presenter.Error(c, status, msg)
	}

	acc, err := h.useCase.GetByID(c.Context(), id)
	if err != nil {
		status, msg := statusFor(err)
		return presenter.Error(c, status, msg)
	}
	return presenter.JSON(c, http.StatusOK, toAccountResponse(acc))
}
