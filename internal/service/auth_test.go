package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/repo"
	"github.com/Skotchmaster/car_export/internal/testutil"
	pkg_hash "github.com/Skotchmaster/car_export/pkg/hash"
	"github.com/Skotchmaster/car_export/pkg/tokens"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	return &AuthService{
		Repo:   &repo.GormRepo{DB: testutil.InitTestDB(t)},
		Issuer: tokens.Issuer{Secret: []byte("test-secret"), Name: "car-export-admin", TTL: AccessTTL},
		Now:    func() time.Time { return now },
	}
}

func TestSeedAdmin_OnlyOnce(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	created, err := svc.SeedAdmin(ctx, "admin", "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.SeedAdmin(ctx, "admin", "other-pass")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.SeedAdmin(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	_, err := svc.SeedAdmin(ctx, "admin", "s3cret-pass")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "admin", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, svc.Now().Add(8*time.Hour), res.ExpiresAt)

	claims, err := tokens.AccessClaimsFromToken(res.Token, svc.Issuer.Secret, svc.Issuer.Name)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID.String(), claims.UserID)
	assert.Equal(t, tokens.RoleAdmin, claims.Role)

	_, err = svc.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	_, err := svc.SeedAdmin(ctx, "admin", "s3cret-pass")
	require.NoError(t, err)
	user, err := svc.Repo.GetAdminByUsername(ctx, "admin")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, user.ID, "wrong", "new-password"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.ChangePassword(ctx, user.ID, "s3cret-pass", "s3cret-pass"), ErrValidation)
	assert.ErrorIs(t, svc.ChangePassword(ctx, uuid.New(), "s3cret-pass", "x"), repo.ErrNotFound)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "s3cret-pass", "new-password"))

	_, err = svc.Login(ctx, "admin", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "admin", "new-password")
	assert.NoError(t, err)
}

func TestLogin_UpgradesWeakHash(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	weak, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.AdminUser{Username: "legacy", PasswordHash: string(weak), Role: tokens.RoleAdmin}
	testutil.MustCreate(t, svc.Repo.DB, &user)

	_, err = svc.Login(ctx, "legacy", "s3cret-pass")
	require.NoError(t, err)

	stored, err := svc.Repo.GetAdmin(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, pkg_hash.NeedsRehash(stored.PasswordHash))
	assert.True(t, pkg_hash.CheckPassword(stored.PasswordHash, "s3cret-pass"))
}
