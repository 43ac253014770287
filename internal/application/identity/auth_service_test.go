package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/auth"
	"github.com/shopadmin/backend/internal/infrastructure/config"
)

type fakeUserRepo struct {
	byEmail map[string]*identity.User
	byID    map[uuid.UUID]*identity.User
	saveErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*identity.User),
		byID:    make(map[uuid.UUID]*identity.User),
	}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) Save(_ context.Context, user *identity.User) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return nil
}

func newTestAuthService(repo identity.UserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-with-enough-entropy-xx",
		TokenExpiration: time.Hour,
		Issuer:          "shopadmin-test",
	})
	return NewAuthService(repo, jwtService, zap.NewNop())
}

func TestAuthService_Register(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Amina",
		Email:    "Amina@Example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "amina@example.com", resp.Email)
	assert.Equal(t, "staff", resp.Role, "registration always yields a staff account")

	_, err = svc.Register(context.Background(), RegisterRequest{
		Name:     "Amina Again",
		Email:    "amina@example.com",
		Password: "secret1",
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Amina",
		Email:    "amina@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), LoginRequest{
			Email:    "amina@example.com",
			Password: "secret1",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.True(t, resp.ExpiresAt.After(time.Now()))
		assert.Equal(t, "admin", resp.User.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), LoginRequest{
			Email:    "amina@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
		assert.Nil(t, resp)
	})

	t.Run("unknown email gets the same error", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret1",
		})
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	})
}

func TestAuthService_Me(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	created, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Amina",
		Email:    "amina@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	resp, err := svc.Me(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)

	_, err = svc.Me(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAuthService_SeedAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	require.NoError(t, svc.SeedAdmin(context.Background(), "admin@example.com", "admin123"))

	user, err := repo.FindByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())

	// seeding again leaves the existing account alone
	require.NoError(t, svc.SeedAdmin(context.Background(), "admin@example.com", "different"))
	again, err := repo.FindByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.True(t, again.CheckPassword("admin123"))
}
