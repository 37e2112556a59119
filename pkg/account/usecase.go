package account

import (
	"context"
	"strings"
)

// PasswordHasher abstracts credential hashing so the use case stays
// agnostic of the scheme (digest vs bcrypt).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// RegisterInput carries a registration request. Industry is required for
// RoleUser and ignored for staff roles.
type RegisterInput struct {
	FullName string
	Username string
	Email    string
	Password string
	Role     Role
	Industry Industry
}

// UpdateInput is a partial update: empty fields stay unchanged, a nil
// Industry stays unchanged. Password is re-hashed only when supplied.
type UpdateInput struct {
	FullName string
	Email    string
	Password string
	Industry *Industry
}

// UseCase describes account management behavior.
type UseCase interface {
	Register(ctx context.Context, in RegisterInput) (Account, error)
	// Authenticate accepts a username or an email as identifier. A wrong
	// password and an unknown identifier are indistinguishable.
	Authenticate(ctx context.Context, identifier, password string) (Account, error)
	GetByID(ctx context.Context, id int64) (Account, error)
	Update(ctx context.Context, id int64, in UpdateInput) error
	Delete(ctx context.Context, id int64) error
	ListByRole(ctx context.Context, role Role, query string) ([]Account, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type service struct {
	repo   Repository
	hasher PasswordHasher
}

// NewService returns the default implementation of UseCase.
func NewService(repo Repository, hasher PasswordHasher) UseCase {
	return &service{repo: repo, hasher: hasher}
}

func (s *service) Register(ctx context.Context, in RegisterInput) (Account, error) {
	if !ValidRole(in.Role) {
		return Account{}, ErrRoleNotFound
	}
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Username) == "" {
		return Account{}, ErrInvalidCredentials
	}
	if !ValidEmail(in.Email) {
		return Account{}, ErrInvalidEmail
	}
	if in.Role == RoleHR && !CompanyEmail(in.Email) {
		return Account{}, ErrCompanyEmailRequired
	}
	if !ValidPassword(in.Password) {
		return Account{}, ErrInvalidPassword
	}

	var profile Profile = StaffProfile{}
	if in.Role == RoleUser {
		if !ValidIndustry(in.Industry) {
			return Account{}, ErrInvalidIndustry
		}
		profile = UserProfile{Industry: in.Industry}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return Account{}, err
	}

	return s.repo.Create(ctx, Account{
		FullName:     in.FullName,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Profile:      profile,
	})
}

func (s *service) Authenticate(ctx context.Context, identifier, password string) (Account, error) {
	if identifier == "" || password == "" {
		return Account{}, ErrInvalidCredentials
	}
	acc, err := s.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if err == ErrAccountNotFound {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, err
	}
	if !s.hasher.Verify(acc.PasswordHash, password) {
		return Account{}, ErrInvalidCredentials
	}
	return acc, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id int64, in UpdateInput) error {
	if in.FullName == "" && in.Email == "" && in.Password == "" && in.Industry == nil {
		return ErrEmptyUpdate
	}
	// All validation happens before any mutation.
	if in.Email != "" && !ValidEmail(in.Email) {
		return ErrInvalidEmail
	}
	if in.Password != "" && !ValidPassword(in.Password) {
		return ErrInvalidPassword
	}
	if in.Industry != nil && !ValidIndustry(*in.Industry) {
		return ErrInvalidIndustry
	}

	ch := Changes{
		FullName: in.FullName,
		Email:    in.Email,
		Industry: in.Industry,
	}
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return err
		}
		ch.PasswordHash = hash
	}
	return s.repo.Update(ctx, id, ch)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListByRole(ctx context.Context, role Role, query string) ([]Account, error) {
	if !ValidRole(role) {
		return nil, ErrRoleNotFound
	}
	return s.repo.ListByRole(ctx, role, query)
}

func (s *service) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.repo.UsernameExists(ctx, username)
}

func (s *service) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.EmailExists(ctx, email)
}
