package service

import (
	"context"
	"testing"
	"time"

	infraRepo "github.com/sangkips/caixa-api/internal/infrastructure/repository"
	"github.com/sangkips/caixa-api/pkg/apperror"
	"github.com/sangkips/caixa-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(infraRepo.NewUserRepository(db), utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour))
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, &RegisterInput{
		Nome: "Ana Souza", Matricula: "123", Email: " Ana@Caixa.local ", Password: "segredo",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@caixa.local", user.Email)
	assert.Equal(t, "operador", user.Role)

	out, err := s.Login(ctx, &LoginInput{Email: "ana@caixa.local", Password: "segredo"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, user.ID, out.User.ID)

	_, err = s.Login(ctx, &LoginInput{Email: "ana@caixa.local", Password: "errada"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = s.Login(ctx, &LoginInput{Email: "nobody@caixa.local", Password: "segredo"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	refreshed, err := s.RefreshToken(ctx, out.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = s.RefreshToken(ctx, out.AccessToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestAuthService_RegisterConflicts(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, &RegisterInput{Nome: "Ana", Matricula: "123", Email: "ana@caixa.local", Password: "segredo"})
	require.NoError(t, err)

	_, err = s.Register(ctx, &RegisterInput{Nome: "Ana 2", Matricula: "124", Email: "ana@caixa.local", Password: "segredo"})
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	_, err = s.Register(ctx, &RegisterInput{Nome: "Bia", Matricula: "123", Email: "bia@caixa.local", Password: "segredo"})
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	_, err = s.Register(ctx, &RegisterInput{Nome: "Caio", Matricula: "125", Email: "caio@caixa.local", Password: "123"})
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestAuthService_ChangePassword(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	user, err := s.Register(ctx, &RegisterInput{Nome: "Ana", Matricula: "123", Email: "ana@caixa.local", Password: "segredo"})
	require.NoError(t, err)

	err = s.ChangePassword(ctx, &ChangePasswordInput{UserID: user.ID, CurrentPassword: "errada", NewPassword: "novasenha"})
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	require.NoError(t, s.ChangePassword(ctx, &ChangePasswordInput{UserID: user.ID, CurrentPassword: "segredo", NewPassword: "novasenha"}))

	_, err = s.Login(ctx, &LoginInput{Email: "ana@caixa.local", Password: "novasenha"})
	assert.NoError(t, err)
}
