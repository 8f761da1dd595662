package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clawwo/IasProductama-sub000/internal/core/apperror"
	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/auth"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/memory"
)

func newService() *auth.Service {
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))
	return auth.NewService(memory.NewUserRepo(), jwtService)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	service := newService()

	user, err := service.Register(ctx, "  Ani@Example.COM ", "Ani", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "ani@example.com", user.Email)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	// Same email again, regardless of case.
	_, err = service.Register(ctx, "ANI@example.com", "Ani", "supersecret")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	service := newService()

	_, err := service.Register(ctx, "", "Ani", "supersecret")
	require.Error(t, err)

	_, err = service.Register(ctx, "ani@example.com", "", "supersecret")
	require.Error(t, err)

	_, err = service.Register(ctx, "ani@example.com", "Ani", "short")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	service := newService()

	_, err := service.Register(ctx, "ani@example.com", "Ani", "supersecret")
	require.NoError(t, err)

	user, tokens, err := service.Login(ctx, "Ani@Example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "ani@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.True(t, tokens.ExpiresAt.After(time.Now()))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	service := newService()

	_, err := service.Register(ctx, "ani@example.com", "Ani", "supersecret")
	require.NoError(t, err)

	// Wrong password and unknown email yield the same message.
	_, _, err = service.Login(ctx, "ani@example.com", "wrong")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	wrongPassword := appErr.Message

	_, _, err = service.Login(ctx, "nobody@example.com", "supersecret")
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	assert.Equal(t, wrongPassword, appErr.Message)
}

func TestTokenRoundTrip(t *testing.T) {
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))

	user := &auth.User{ID: id.New(), Email: "ani@example.com", Name: "Ani"}
	token, expiresAt, err := jwtService.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now().Add(11*time.Hour)))

	uc, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), uc.UserID)
	assert.Equal(t, "ani@example.com", uc.Email)
	assert.Equal(t, "Ani", uc.Name)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	signer := auth.NewJWTService(auth.DefaultJWTConfig("secret-a"))
	verifier := auth.NewJWTService(auth.DefaultJWTConfig("secret-b"))

	user := &auth.User{ID: id.New(), Email: "ani@example.com"}
	token, _, err := signer.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := auth.DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	jwtService := auth.NewJWTService(cfg)

	user := &auth.User{ID: id.New(), Email: "ani@example.com"}
	token, _, err := jwtService.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))
	_, err := jwtService.ValidateToken("not-a-token")
	assert.Error(t, err)
}
