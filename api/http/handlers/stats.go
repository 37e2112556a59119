package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hirezy/backend/api/http/presenter"
	"github.com/hirezy/backend/pkg/stats"
)

// StatsHandler serves the admin dashboard aggregates.
type StatsHandler struct {
	svc stats.UseCase
}

func NewStatsHandler(svc stats.UseCase) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Users returns the User-account aggregates.
// @Summary  User statistics
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} stats.UserStats
// @Router  /admin/stats/users [get]
func (h *StatsHandler) Users(c *fiber.Ctx) error {
	s, err := h.svc.Users(c.Context())
	if err != nil {
		status, msg := statusFor(err)
		return presenter.Error(c, status, msg)
	}
	return presenter.JSON(c, http.StatusOK, s)
}

// HR returns the HR-account aggregates.
// @Summary  HR statistics
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} stats.HRStats
// @Router  /admin/stats/hr [get]
func (h *StatsHandler) HR(c *fiber.Ctx) error {
	s, err := h.svc.HR(c.Context())
	if err != nil {
		status, msg := statusFor(err)
		return presenter.Error(c, status, msg)
	}
	return presenter.JSON(c, http.StatusOK, s)
}
