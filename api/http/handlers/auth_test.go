package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirezy/backend/pkg/account"
)

// stubUseCase overrides only the methods a test exercises; anything else
// panics via the embedded nil interface.
type stubUseCase struct {
	account.UseCase
	registerFn       func(ctx context.Context, in account.RegisterInput) (account.Account, error)
	authenticateFn   func(ctx context.Context, identifier, password string) (account.Account, error)
	usernameExistsFn func(ctx context.Context, username string) (bool, error)
}

func (s *stubUseCase) Register(ctx context.Context, in account.RegisterInput) (account.Account, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUseCase) Authenticate(ctx context.Context, identifier, password string) (account.Account, error) {
	return s.authenticateFn(ctx, identifier, password)
}

func (s *stubUseCase) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.usernameExistsFn(ctx, username)
}

type stubTokens struct{}

func (stubTokens) Generate(_ context.Context, _ account.Account) (string, error) {
	return "test-token", nil
}

func newAuthApp(uc account.UseCase) *fiber.App {
	h := NewAuthHandler(uc, stubTokens{})
	app := fiber.New()
	app.Post("/auth/register", h.Register)
	app.Post("/auth/login", h.Login)
	app.Get("/auth/username-available", h.UsernameAvailable)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRegisterHandler(t *testing.T) {
	uc := &stubUseCase{
		registerFn: func(_ context.Context, in account.RegisterInput) (account.Account, error) {
			return account.Account{
				ID:       1,
				FullName: in.FullName,
				Username: in.Username,
				Email:    in.Email,
				Role:     in.Role,
				Profile:  account.UserProfile{Industry: in.Industry},
			}, nil
		},
	}
	app := newAuthApp(uc)

	resp := postJSON(t, app, "/auth/register", `{
		"full_name": "Alice Smith",
		"username": "alice",
		"email": "alice@x.com",
		"password": "abcdefg1!",
		"role": "User",
		"industry": "Software"
	}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var got accountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "Software", got.Industry)
}

func TestRegisterHandlerMissingFields(t *testing.T) {
	app := newAuthApp(&stubUseCase{})

	resp := postJSON(t, app, "/auth/register", `{"username": "alice"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterHandlerRejectsAdminRole(t *testing.T) {
	app := newAuthApp(&stubUseCase{})

	resp := postJSON(t, app, "/auth/register", `{
		"full_name": "Eve",
		"username": "eve",
		"email": "eve@x.com",
		"password": "abcdefg1!",
		"role": "Admin"
	}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterHandlerDuplicate(t *testing.T) {
	uc := &stubUseCase{
		registerFn: func(_ context.Context, _ account.RegisterInput) (account.Account, error) {
			return account.Account{}, account.ErrDuplicateUsername
		},
	}
	app := newAuthApp(uc)

	resp := postJSON(t, app, "/auth/register", `{
		"full_name": "Alice Smith",
		"username": "alice",
		"email": "alice@x.com",
		"password": "abcdefg1!",
		"role": "User",
		"industry": "Software"
	}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginHandler(t *testing.T) {
	uc := &stubUseCase{
		authenticateFn: func(_ context.Context, identifier, _ string) (account.Account, error) {
			if identifier != "alice" {
				return account.Account{}, account.ErrInvalidCredentials
			}
			return account.Account{ID: 1, Username: "alice", Role: account.RoleUser, Profile: account.UserProfile{Industry: account.IndustrySoftware}}, nil
		},
	}
	app := newAuthApp(uc)

	resp := postJSON(t, app, "/auth/login", `{"identifier": "alice", "password": "abcdefg1!"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got loginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "test-token", got.Token)
	assert.Equal(t, "alice", got.Account.Username)

	resp = postJSON(t, app, "/auth/login", `{"identifier": "mallory", "password": "abcdefg1!"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUsernameAvailableHandler(t *testing.T) {
	uc := &stubUseCase{
		usernameExistsFn: func(_ context.Context, username string) (bool, error) {
			return username == "taken", nil
		},
	}
	app := newAuthApp(uc)

	req := httptest.NewRequest(http.MethodGet, "/auth/username-available?username=taken", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body["available"])

	req = httptest.NewRequest(http.MethodGet, "/auth/username-available?username=free", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	var body2 map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body2))
	assert.True(t, body2["available"])
}
