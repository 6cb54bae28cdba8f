package services

import (
	"context"
	"testing"
	"time"

	"stratplan/apperrors"
	"stratplan/middlewares"
	"stratplan/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginIssuesTokenWithClaims(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	seeded := seedUser(t, repo, "dept@example.com", "secret-pass", models.RoleDepartment)

	token, user, err := svc.Login(context.Background(), models.LoginInput{
		Email:    "dept@example.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)

	parsed, err := jwt.ParseWithClaims(token, &middlewares.Claims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(*middlewares.Claims)
	assert.Equal(t, seeded.ID.Hex(), claims.UserID)
	assert.Equal(t, models.RoleDepartment, claims.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	seedUser(t, repo, "dept@example.com", "secret-pass", models.RoleDepartment)

	_, _, wrongPassword := svc.Login(context.Background(), models.LoginInput{
		Email:    "dept@example.com",
		Password: "not-it",
	})
	_, _, unknownEmail := svc.Login(context.Background(), models.LoginInput{
		Email:    "nobody@example.com",
		Password: "secret-pass",
	})

	// Neither failure mode reveals whether the account exists.
	assert.True(t, apperrors.IsKind(wrongPassword, apperrors.KindAuthentication))
	assert.True(t, apperrors.IsKind(unknownEmail, apperrors.KindAuthentication))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestDeactivatedAccountCannotLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	user := seedUser(t, repo, "dept@example.com", "secret-pass", models.RoleDepartment)
	require.NoError(t, repo.Deactivate(context.Background(), user.ID))

	_, _, err := svc.Login(context.Background(), models.LoginInput{
		Email:    "dept@example.com",
		Password: "secret-pass",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
}
