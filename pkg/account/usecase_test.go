package account

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo mimics the store: serial ids, unique username/email enforced at
// insert time, newest-first listing.
type stubRepo struct {
	nextID   int64
	accounts map[int64]Account
}

func newStubRepo() *stubRepo {
	return &stubRepo{nextID: 1, accounts: make(map[int64]Account)}
}

func (r *stubRepo) Create(_ context.Context, a Account) (Account, error) {
	if !ValidRole(a.Role) {
		return Account{}, ErrRoleNotFound
	}
	for _, existing := range r.accounts {
		if existing.Username == a.Username {
			return Account{}, ErrDuplicateUsername
		}
		if existing.Email == a.Email {
			return Account{}, ErrDuplicateEmail
		}
	}
	a.ID = r.nextID
	r.nextID++
	a.RegisteredAt = time.Now().UTC()
	r.accounts[a.ID] = a
	return a, nil
}

func (r *stubRepo) GetByID(_ context.Context, id int64) (Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return a, nil
}

func (r *stubRepo) GetByIdentifier(_ context.Context, identifier string) (Account, error) {
	for _, a := range r.accounts {
		if a.Username == identifier || a.Email == identifier {
			return a, nil
		}
	}
	return Account{}, ErrAccountNotFound
}

func (r *stubRepo) Update(_ context.Context, id int64, ch Changes) error {
	a, ok := r.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	if ch.FullName != "" {
		a.FullName = ch.FullName
	}
	if ch.Email != "" {
		a.Email = ch.Email
	}
	if ch.PasswordHash != "" {
		a.PasswordHash = ch.PasswordHash
	}
	if ch.Industry != nil {
		a.Profile = UserProfile{Industry: *ch.Industry}
	}
	r.accounts[id] = a
	return nil
}

func (r *stubRepo) Delete(_ context.Context, id int64) error {
	delete(r.accounts, id)
	return nil
}

func (r *stubRepo) ListByRole(_ context.Context, role Role, query string) ([]Account, error) {
	q := strings.ToLower(query)
	var res []Account
	for _, a := range r.accounts {
		if a.Role != role {
			continue
		}
		if q != "" {
			ind, _ := a.Industry()
			haystack := strings.ToLower(a.FullName + " " + a.Username + " " + a.Email + " " + string(ind))
			if !strings.Contains(haystack, q) {
				continue
			}
		}
		res = append(res, a)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].RegisteredAt.Equal(res[j].RegisteredAt) {
			return res[i].ID > res[j].ID
		}
		return res[i].RegisteredAt.After(res[j].RegisteredAt)
	})
	return res, nil
}

func (r *stubRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, a := range r.accounts {
		if a.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// plainHasher makes stored hashes readable in assertions.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hash:" + password, nil }
func (plainHasher) Verify(hash, password string) bool    { return hash == "hash:"+password }

func newTestService() (UseCase, *stubRepo) {
	repo := newStubRepo()
	return NewService(repo, plainHasher{}), repo
}

func registerAlice(t *testing.T, svc UseCase) Account {
	t.Helper()
	acc, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Alice Smith",
		Username: "alice",
		Email:    "alice@x.com",
		Password: "abcdefg1!",
		Role:     RoleUser,
		Industry: IndustrySoftware,
	})
	require.NoError(t, err)
	return acc
}

func TestRegisterThenAuthenticate(t *testing.T) {
	svc, _ := newTestService()
	acc := registerAlice(t, svc)

	assert.NotZero(t, acc.ID)
	assert.NotEqual(t, "abcdefg1!", acc.PasswordHash)

	for _, identifier := range []string{"alice", "alice@x.com"} {
		got, err := svc.Authenticate(context.Background(), identifier, "abcdefg1!")
		require.NoError(t, err)
		assert.Equal(t, acc.FullName, got.FullName)
		assert.Equal(t, acc.Email, got.Email)
		assert.Equal(t, RoleUser, got.Role)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	registerAlice(t, svc)

	_, err := svc.Authenticate(context.Background(), "alice", "wrong-pass1!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown identifier is indistinguishable from a wrong password.
	_, err = svc.Authenticate(context.Background(), "nobody", "abcdefg1!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, repo := newTestService()
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Other Alice",
		Username: "alice",
		Email:    "other@x.com",
		Password: "abcdefg1!",
		Role:     RoleUser,
		Industry: IndustryFinance,
	})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	// The existing account is unchanged.
	existing, err := repo.GetByIdentifier(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", existing.FullName)
	assert.Equal(t, "alice@x.com", existing.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Bob",
		Username: "bob",
		Email:    "alice@x.com",
		Password: "abcdefg1!",
		Role:     RoleUser,
		Industry: IndustrySoftware,
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		FullName: "X", Username: "x", Email: "bad-email", Password: "abcdefg1!", Role: RoleUser, Industry: IndustrySoftware,
	})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(ctx, RegisterInput{
		FullName: "X", Username: "x", Email: "x@x.com", Password: "short", Role: RoleUser, Industry: IndustrySoftware,
	})
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = svc.Register(ctx, RegisterInput{
		FullName: "X", Username: "x", Email: "x@x.com", Password: "abcdefg1!", Role: RoleUser, Industry: "Agriculture",
	})
	assert.ErrorIs(t, err, ErrInvalidIndustry)

	_, err = svc.Register(ctx, RegisterInput{
		FullName: "X", Username: "x", Email: "x@x.com", Password: "abcdefg1!", Role: "Manager",
	})
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestRegisterHRRequiresCompanyEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		FullName: "HR Person", Username: "hr1", Email: "hr1@gmail.com", Password: "abcdefg1!", Role: RoleHR,
	})
	assert.ErrorIs(t, err, ErrCompanyEmailRequired)

	acc, err := svc.Register(ctx, RegisterInput{
		FullName: "HR Person", Username: "hr1", Email: "hr1@acme.io", Password: "abcdefg1!", Role: RoleHR,
	})
	require.NoError(t, err)
	assert.Equal(t, RoleHR, acc.Role)
	_, hasIndustry := acc.Industry()
	assert.False(t, hasIndustry)
}

func TestUpdatePartial(t *testing.T) {
	svc, repo := newTestService()
	acc := registerAlice(t, svc)

	// Only the name changes; email, password and industry stay put.
	err := svc.Update(context.Background(), acc.ID, UpdateInput{FullName: "Alice Jones"})
	require.NoError(t, err)

	got, err := repo.GetByID(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Jones", got.FullName)
	assert.Equal(t, "alice@x.com", got.Email)
	assert.Equal(t, acc.PasswordHash, got.PasswordHash)
	ind, ok := got.Industry()
	require.True(t, ok)
	assert.Equal(t, IndustrySoftware, ind)
}

func TestUpdateRehashesPassword(t *testing.T) {
	svc, repo := newTestService()
	acc := registerAlice(t, svc)

	err := svc.Update(context.Background(), acc.ID, UpdateInput{Password: "newpass1!"})
	require.NoError(t, err)

	got, err := repo.GetByID(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.NotEqual(t, acc.PasswordHash, got.PasswordHash)

	_, err = svc.Authenticate(context.Background(), "alice", "newpass1!")
	assert.NoError(t, err)
}

func TestUpdateValidation(t *testing.T) {
	svc, _ := newTestService()
	acc := registerAlice(t, svc)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Update(ctx, acc.ID, UpdateInput{}), ErrEmptyUpdate)
	assert.ErrorIs(t, svc.Update(ctx, acc.ID, UpdateInput{Email: "a..b@x.com"}), ErrInvalidEmail)
	assert.ErrorIs(t, svc.Update(ctx, acc.ID, UpdateInput{Password: "weak"}), ErrInvalidPassword)

	bad := Industry("Agriculture")
	assert.ErrorIs(t, svc.Update(ctx, acc.ID, UpdateInput{Industry: &bad}), ErrInvalidIndustry)
}

func TestUpdateMissingAccount(t *testing.T) {
	svc, _ := newTestService()
	err := svc.Update(context.Background(), 9999, UpdateInput{FullName: "Nobody"})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc, _ := newTestService()
	acc := registerAlice(t, svc)

	require.NoError(t, svc.Delete(context.Background(), acc.ID))
	// Deleting again (or a never-existing id) is a no-op.
	assert.NoError(t, svc.Delete(context.Background(), acc.ID))
	assert.NoError(t, svc.Delete(context.Background(), 424242))
}

func TestListByRole(t *testing.T) {
	svc, _ := newTestService()
	acc := registerAlice(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "HR Person", Username: "hr1", Email: "hr1@acme.io", Password: "abcdefg1!", Role: RoleHR,
	})
	require.NoError(t, err)

	users, err := svc.ListByRole(context.Background(), RoleUser, "")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, acc.Username, users[0].Username)
	ind, ok := users[0].Industry()
	require.True(t, ok)
	assert.Equal(t, IndustrySoftware, ind)
	assert.False(t, users[0].RegisteredAt.IsZero())
	assert.False(t, users[0].RegisteredAt.After(time.Now().UTC()))

	_, err = svc.ListByRole(context.Background(), "Manager", "")
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestListByRoleSearch(t *testing.T) {
	svc, _ := newTestService()
	registerAlice(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Bob Stone", Username: "bob", Email: "bob@x.com", Password: "abcdefg1!", Role: RoleUser, Industry: IndustryFinance,
	})
	require.NoError(t, err)

	got, err := svc.ListByRole(context.Background(), RoleUser, "finance")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bob", got[0].Username)
}

func TestExistenceProbes(t *testing.T) {
	svc, _ := newTestService()
	registerAlice(t, svc)
	ctx := context.Background()

	exists, err := svc.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.UsernameExists(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = svc.EmailExists(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.EmailExists(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}
