package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/udev-hq/intern-portal-backend/internal/domain/auth"
	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsUnique(ctx context.Context, email, phone, idCardNumber string) (bool, bool, bool, error) {
	return false, false, false, nil
}

func (r *fakeUserRepo) List(ctx context.Context, sc user.UserScope, filter user.ListFilter) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) ListInternees(ctx context.Context, teamLeadID *string) ([]user.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u user.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id string, isActive bool) error {
	u := r.users[id]
	u.IsActive = isActive
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id string, role user.Role, teamLeadID *string) error {
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) HasDependentRecords(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role user.Role) (int64, error) { return 0, nil }
func (r *fakeUserRepo) CountAll(ctx context.Context) (int64, error)                    { return 0, nil }
func (r *fakeUserRepo) CountInternees(ctx context.Context, teamLeadID string, activeOnly bool) (int64, error) {
	return 0, nil
}

func activeUser(t *testing.T) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	require.NoError(t, err)
	return user.User{
		ID:           "user-1",
		FirstName:    "Ayesha",
		LastName:     "Khan",
		Email:        "ayesha@example.com",
		PasswordHash: string(hash),
		Role:         user.RoleEmployee,
		IsActive:     true,
	}
}

func newTestAuthService(repo user.UserRepository) auth.AuthService {
	return NewAuthService(repo, jwt.NewJWTService("test-secret", "15m", "168h"), nil)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials yield both tokens", func(t *testing.T) {
		svc := newTestAuthService(newFakeUserRepo(activeUser(t)))

		resp, err := svc.Login(ctx, auth.LoginRequest{Email: "ayesha@example.com", Password: "s3cretpass"})

		require.NoError(t, err)
		assert.Equal(t, "user-1", resp.User.ID)
		assert.NotEmpty(t, resp.Token)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.NotEqual(t, resp.Token, resp.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newTestAuthService(newFakeUserRepo(activeUser(t)))

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ayesha@example.com", Password: "wrong"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := newTestAuthService(newFakeUserRepo())

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: "s3cretpass"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		u := activeUser(t)
		u.IsActive = false
		svc := newTestAuthService(newFakeUserRepo(u))

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ayesha@example.com", Password: "s3cretpass"})

		assert.ErrorIs(t, err, auth.ErrInactiveAccount)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("refresh token mints a new access token", func(t *testing.T) {
		repo := newFakeUserRepo(activeUser(t))
		svc := newTestAuthService(repo)

		login, err := svc.Login(ctx, auth.LoginRequest{Email: "ayesha@example.com", Password: "s3cretpass"})
		require.NoError(t, err)

		resp, err := svc.Refresh(ctx, auth.RefreshRequest{RefreshToken: login.RefreshToken})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("access token is not accepted as a refresh token", func(t *testing.T) {
		repo := newFakeUserRepo(activeUser(t))
		svc := newTestAuthService(repo)

		login, err := svc.Login(ctx, auth.LoginRequest{Email: "ayesha@example.com", Password: "s3cretpass"})
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, auth.RefreshRequest{RefreshToken: login.Token})

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("account deleted after issuance", func(t *testing.T) {
		repo := newFakeUserRepo(activeUser(t))
		svc := newTestAuthService(repo)

		login, err := svc.Login(ctx, auth.LoginRequest{Email: "ayesha@example.com", Password: "s3cretpass"})
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, "user-1"))

		_, err = svc.Refresh(ctx, auth.RefreshRequest{RefreshToken: login.RefreshToken})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("account deactivated after issuance", func(t *testing.T) {
		repo := newFakeUserRepo(activeUser(t))
		svc := newTestAuthService(repo)

		login, err := svc.Login(ctx, auth.LoginRequest{Email: "ayesha@example.com", Password: "s3cretpass"})
		require.NoError(t, err)

		require.NoError(t, repo.UpdateStatus(ctx, "user-1", false))

		_, err = svc.Refresh(ctx, auth.RefreshRequest{RefreshToken: login.RefreshToken})
		assert.ErrorIs(t, err, auth.ErrInactiveAccount)
	})

	t.Run("missing token", func(t *testing.T) {
		svc := newTestAuthService(newFakeUserRepo())

		_, err := svc.Refresh(ctx, auth.RefreshRequest{})
		assert.Error(t, err)
	})
}
