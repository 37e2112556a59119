package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirezy/backend/pkg/account"
)

// Default admin seeded at startup. A known demo credential: rotate or
// remove it before any non-demo deployment.
const (
	defaultAdminName     = "Super Admin"
	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@example.com"
	defaultAdminPassword = "admin123"
)

const uniqueViolation = "23505"

// AccountRepository implements account.Repository backed by PostgreSQL
// (pgx). Construction ensures the schema and seed data exist.
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool, hasher account.PasswordHasher) (*AccountRepository, error) {
	repo := &AccountRepository{pool: pool}
	ctx := context.Background()
	if err := repo.ensureSchema(ctx); err != nil {
		return nil, err
	}
	if err := repo.seed(ctx, hasher); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *AccountRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS roles (
			id SERIAL PRIMARY KEY,
			name TEXT UNIQUE
		);
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			full_name TEXT,
			username TEXT UNIQUE,
			email TEXT UNIQUE,
			password TEXT,
			industry TEXT,
			role_id INTEGER REFERENCES roles(id),
			registered_at TIMESTAMPTZ DEFAULT now()
		);
		-- backfill for older schemas
		ALTER TABLE users ADD COLUMN IF NOT EXISTS registered_at TIMESTAMPTZ DEFAULT now();
	`)
	return err
}

// seed inserts the three fixed roles and the default admin account.
// Idempotent: conflicts on role name and admin username are ignored, so
// running twice leaves exactly three roles and one admin.
func (r *AccountRepository) seed(ctx context.Context, hasher account.PasswordHasher) error {
	for _, role := range []account.Role{account.RoleAdmin, account.RoleHR, account.RoleUser} {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING
		`, string(role))
		if err != nil {
			return fmt.Errorf("seed role %s: %w", role, err)
		}
	}

	hash, err := hasher.Hash(defaultAdminPassword)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO users (full_name, username, email, password, industry, role_id)
		SELECT $1, $2, $3, $4, NULL, id FROM roles WHERE name = $5
		ON CONFLICT (username) DO NOTHING
	`, defaultAdminName, defaultAdminUsername, defaultAdminEmail, hash, string(account.RoleAdmin))
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func (r *AccountRepository) Create(ctx context.Context, a account.Account) (account.Account, error) {
	var roleID int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM roles WHERE name = $1`, string(a.Role)).Scan(&roleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrRoleNotFound
		}
		return account.Account{}, err
	}

	var industry *string
	if ind, ok := a.Industry(); ok {
		s := string(ind)
		industry = &s
	}

	var registeredAt time.Time
	err = r.pool.QueryRow(ctx, `
		INSERT INTO users (full_name, username, email, password, industry, role_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, registered_at
	`, a.FullName, a.Username, a.Email, a.PasswordHash, industry, roleID).Scan(&a.ID, &registeredAt)
	if err != nil {
		return account.Account{}, classifyUnique(err)
	}
	a.RegisteredAt = registeredAt.UTC()
	return a, nil
}

// classifyUnique maps a unique violation to the constraint-specific error
// using the constraint name the driver reports.
func classifyUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "users_username_key":
			return account.ErrDuplicateUsername
		case "users_email_key":
			return account.ErrDuplicateEmail
		}
	}
	return err
}

const accountColumns = `
	u.id, u.full_name, u.username, u.email, u.password, u.industry, r.name, u.registered_at
`

func scanAccount(row pgx.Row) (account.Account, error) {
	var (
		a        account.Account
		industry *string
		role     string
		regAt    time.Time
	)
	if err := row.Scan(&a.ID, &a.FullName, &a.Username, &a.Email, &a.PasswordHash, &industry, &role, &regAt); err != nil {
		return account.Account{}, err
	}
	a.Role = account.Role(role)
	a.RegisteredAt = regAt.UTC()
	if a.Role == account.RoleUser && industry != nil {
		a.Profile = account.UserProfile{Industry: account.Industry(*industry)}
	} else {
		a.Profile = account.StaffProfile{}
	}
	return a, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (account.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM users u INNER JOIN roles r ON u.role_id = r.id
		WHERE u.id = $1
	`, id)
	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return account.Account{}, account.ErrAccountNotFound
	}
	return a, err
}

func (r *AccountRepository) GetByIdentifier(ctx context.Context, identifier string) (account.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM users u INNER JOIN roles r ON u.role_id = r.id
		WHERE u.username = $1 OR u.email = $1
	`, identifier)
	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return account.Account{}, account.ErrAccountNotFound
	}
	return a, err
}

func (r *AccountRepository) Update(ctx context.Context, id int64, ch account.Changes) error {
	var (
		set  []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if ch.FullName != "" {
		add("full_name", ch.FullName)
	}
	if ch.Email != "" {
		add("email", ch.Email)
	}
	if ch.PasswordHash != "" {
		add("password", ch.PasswordHash)
	}
	if ch.Industry != nil {
		add("industry", string(*ch.Industry))
	}
	if len(set) == 0 {
		return account.ErrEmptyUpdate
	}
	args = append(args, id)

	cmd, err := r.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args)),
		args...)
	if err != nil {
		return classifyUnique(err)
	}
	if cmd.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

// Delete is an idempotent hard delete: a missing id is a no-op.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *AccountRepository) ListByRole(ctx context.Context, role account.Role, query string) ([]account.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM users u INNER JOIN roles r ON u.role_id = r.id
		WHERE r.name = $1
		  AND ($2 = ''
			OR u.full_name ILIKE '%' || $2 || '%'
			OR u.username ILIKE '%' || $2 || '%'
			OR u.email ILIKE '%' || $2 || '%'
			OR COALESCE(u.industry, '') ILIKE '%' || $2 || '%')
		ORDER BY u.registered_at DESC
	`, string(role), query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []account.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *AccountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}
