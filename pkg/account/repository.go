package account

import (
	"context"
	"errors"
)

// Errors raised at the service boundary. Handlers map each to a status and
// a corrective message; anything else is treated as an unexpected store
// failure and passed through wrapped.
var (
	ErrRoleNotFound         = errors.New("role not found")
	ErrDuplicateUsername    = errors.New("username already taken")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrInvalidPassword      = errors.New("password does not meet requirements")
	ErrInvalidIndustry      = errors.New("invalid industry value")
	ErrCompanyEmailRequired = errors.New("company email required")
	ErrAccountNotFound      = errors.New("account not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmptyUpdate          = errors.New("no fields to update")
)

// Changes describes a partial update. Empty string fields are left
// unchanged; a nil Industry leaves the industry unchanged.
type Changes struct {
	FullName     string
	Email        string
	PasswordHash string
	Industry     *Industry
}

// Repository abstracts account persistence. The backing store's unique
// constraints on username and email are the correctness guarantee; the
// Exists probes are advisory only.
type Repository interface {
	Create(ctx context.Context, a Account) (Account, error)
	GetByID(ctx context.Context, id int64) (Account, error)
	// GetByIdentifier matches either username or email.
	GetByIdentifier(ctx context.Context, identifier string) (Account, error)
	Update(ctx context.Context, id int64, ch Changes) error
	Delete(ctx context.Context, id int64) error
	// ListByRole returns accounts newest registration first, optionally
	// filtered by a case-insensitive substring over name, username,
	// email and industry.
	ListByRole(ctx context.Context, role Role, query string) ([]Account, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
