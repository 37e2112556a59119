package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/hirezy/backend/pkg/account"
)

// statusFor maps service errors onto a status and a corrective message.
// Unclassified errors get a generic message; the detail is logged by the
// request middleware, not echoed to the client.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, account.ErrDuplicateUsername):
		return http.StatusConflict, "The username is already taken. Please choose another."
	case errors.Is(err, account.ErrDuplicateEmail):
		return http.StatusConflict, "The email is already registered. Please use a different email."
	case errors.Is(err, account.ErrInvalidEmail):
		return http.StatusBadRequest, "Invalid email format."
	case errors.Is(err, account.ErrInvalidPassword):
		return http.StatusBadRequest, "Password must be at least 8 characters long and contain a letter, a number and a special character."
	case errors.Is(err, account.ErrInvalidIndustry):
		return http.StatusBadRequest, "Invalid industry value."
	case errors.Is(err, account.ErrCompanyEmailRequired):
		return http.StatusBadRequest, "HR accounts must register with a company email."
	case errors.Is(err, account.ErrRoleNotFound):
		return http.StatusBadRequest, "Unknown role. Ensure roles are initialized."
	case errors.Is(err, account.ErrAccountNotFound):
		return http.StatusNotFound, "Account not found."
	case errors.Is(err, account.ErrEmptyUpdate):
		return http.StatusBadRequest, "No fields to update."
	case errors.Is(err, account.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username/email or password."
	default:
		return http.StatusInternalServerError, "An unexpected error occurred."
	}
}

// accountResponse is the wire shape of an account; the password hash never
// leaves the service.
type accountResponse struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Industry     string    `json:"industry,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

func toAccountResponse(a account.Account) accountResponse {
	resp := accountResponse{
		ID:           a.ID,
		FullName:     a.FullName,
		Username:     a.Username,
		Email:        a.Email,
		Role:         string(a.Role),
		RegisteredAt: a.RegisteredAt,
	}
	if ind, ok := a.Industry(); ok {
		resp.Industry = string(ind)
	}
	return resp
}
