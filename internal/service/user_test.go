package service

import (
	"testing"

	"hostpanel/internal/apperr"
	"hostpanel/internal/crypto"
	"hostpanel/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserCreateHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zap.NewNop())

	user, err := svc.Create(models.CreateUser{
		Email:    "ops@example.com",
		Password: "hunter2!",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2!", user.PasswordHash)
	assert.Equal(t, string(models.RoleUser), user.Role)

	ok, err := crypto.VerifyPassword("hunter2!", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserCreateUnknownRoleFallsBack(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zap.NewNop())

	role := "superadmin"
	user, err := svc.Create(models.CreateUser{
		Email:    "ops@example.com",
		Password: "hunter2!",
		Role:     &role,
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleUser), user.Role)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "ops@example.com", "hunter2!")
	svc := NewUserService(repo, zap.NewNop())

	_, err := svc.Create(models.CreateUser{
		Email:    "ops@example.com",
		Password: "other",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.BadRequest))
}

func TestUserUpdateMergesFields(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "ops@example.com", "hunter2!")
	svc := NewUserService(repo, zap.NewNop())

	company := "Acme"
	timezone := "Europe/Berlin"
	updated, err := svc.Update(user.ID, models.UpdateUser{
		Company:  &company,
		Timezone: &timezone,
	})
	require.NoError(t, err)

	assert.Equal(t, "ops@example.com", updated.Email)
	require.NotNil(t, updated.Company)
	assert.Equal(t, "Acme", *updated.Company)
	require.NotNil(t, updated.Timezone)
	assert.Equal(t, "Europe/Berlin", *updated.Timezone)
}

func TestUserDeleteNotFound(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zap.NewNop())

	err := svc.Delete(uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestUserGetNotFound(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zap.NewNop())

	_, err := svc.Get(uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}
