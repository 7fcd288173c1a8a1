package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-warehouse-service/internal/auth"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/store"
	"github.com/fekuna/omnipos-warehouse-service/internal/testutil"
	"github.com/fekuna/omnipos-warehouse-service/internal/user"
	"github.com/fekuna/omnipos-warehouse-service/internal/user/dto"
	"github.com/fekuna/omnipos-warehouse-service/pkg/apperror"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUseCase(t *testing.T) (user.UseCase, *store.Store, *auth.TokenManager) {
	t.Helper()
	st := testutil.NewStore(t)
	tokens := auth.NewTokenManager("user-test-secret", time.Hour)
	return NewUserUseCase(st, tokens, logger.NewNop(), bcrypt.MinCost), st, tokens
}

func TestRegister(t *testing.T) {
	uc, st, _ := newUseCase(t)

	u, err := uc.Register(context.Background(), &dto.RegisterInput{
		FirstName: "  Ada ",
		LastName:  "Lovelace",
		Email:     "  Ada@Example.COM ",
		Password:  "secret",
	})

	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "Ada", u.FirstName)
	assert.Equal(t, model.RolePending, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")))
	assert.Zero(t, testutil.Count(t, st.DB(), "audit_logs", ""))
}

func TestRegister_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input dto.RegisterInput
		kind  apperror.Kind
	}{
		{name: "missing email", input: dto.RegisterInput{FirstName: "A", LastName: "B", Password: "p"}, kind: apperror.KindValidationFailed},
		{name: "missing password", input: dto.RegisterInput{FirstName: "A", LastName: "B", Email: "a@b.c"}, kind: apperror.KindValidationFailed},
		{name: "blank names", input: dto.RegisterInput{FirstName: " ", LastName: "B", Email: "a@b.c", Password: "p"}, kind: apperror.KindValidationFailed},
		{name: "duplicate email", input: dto.RegisterInput{FirstName: "A", LastName: "B", Email: "TAKEN@example.com", Password: "p"}, kind: apperror.KindDuplicateUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, st, _ := newUseCase(t)
			testutil.SeedUser(t, st.DB(), "taken@example.com")

			_, err := uc.Register(context.Background(), &tt.input)

			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}
}

func TestLogin(t *testing.T) {
	uc, st, tokens := newUseCase(t)
	u := testutil.SeedUser(t, st.DB(), "owner@example.com")

	result, err := uc.Login(context.Background(), &dto.LoginInput{Email: " OWNER@example.com", Password: "password"})

	require.NoError(t, err)
	assert.Equal(t, u.ID, result.UserID)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	id, err := tokens.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UserID)
	assert.Equal(t, 1, testutil.Count(t, st.DB(), "audit_logs", "action = ? AND record_id = ?", model.AuditActionLogin, u.ID))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	uc, st, _ := newUseCase(t)
	testutil.SeedUser(t, st.DB(), "owner@example.com")

	tests := []struct {
		name  string
		input dto.LoginInput
	}{
		{name: "wrong password", input: dto.LoginInput{Email: "owner@example.com", Password: "nope"}},
		{name: "unknown email", input: dto.LoginInput{Email: "ghost@example.com", Password: "password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Login(context.Background(), &tt.input)

			assert.Equal(t, apperror.KindInvalidCredentials, apperror.KindOf(err))
		})
	}
	assert.Zero(t, testutil.Count(t, st.DB(), "audit_logs", ""))
}

func TestMe(t *testing.T) {
	uc, st, _ := newUseCase(t)
	u := testutil.SeedUser(t, st.DB(), "owner@example.com")

	got, err := uc.Me(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", got.Email)

	_, err = uc.Me(context.Background(), 0)
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))

	_, err = uc.Me(context.Background(), u.ID+100)
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
}
