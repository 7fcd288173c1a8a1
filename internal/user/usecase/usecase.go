package usecase

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-warehouse-service/internal/auditlog"
	"github.com/fekuna/omnipos-warehouse-service/internal/auth"
	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/store"
	"github.com/fekuna/omnipos-warehouse-service/internal/user"
	"github.com/fekuna/omnipos-warehouse-service/internal/user/dto"
	"github.com/fekuna/omnipos-warehouse-service/pkg/apperror"
	"github.com/fekuna/omnipos-warehouse-service/pkg/database"
	"github.com/fekuna/omnipos-warehouse-service/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type userUseCase struct {
	store     store.Gateway
	tokens    *auth.TokenManager
	logger    logger.ZapLogger
	cost      int
	dummyHash []byte
}

// NewUserUseCase hashes passwords with cost; pass bcrypt.DefaultCost outside tests.
func NewUserUseCase(st store.Gateway, tokens *auth.TokenManager, log logger.ZapLogger, cost int) user.UseCase {
	// Compared against when the email is unknown so both failure paths pay for one bcrypt check.
	dummy, err := bcrypt.GenerateFromPassword([]byte("omnipos-dummy-password"), cost)
	if err != nil {
		log.Fatal("failed to prepare password hasher", zap.Error(err))
	}
	return &userUseCase{
		store:     st,
		tokens:    tokens,
		logger:    log,
		cost:      cost,
		dummyHash: dummy,
	}
}

func (uc *userUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error) {
	email := normalizeEmail(input.Email)
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)

	switch {
	case email == "":
		return nil, apperror.Validation("email is required")
	case input.Password == "":
		return nil, apperror.Validation("password is required")
	case firstName == "" || lastName == "":
		return nil, apperror.Validation("first name and last name are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), uc.cost)
	if err != nil {
		uc.logger.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &model.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RolePending,
	}

	err = uc.store.Execute(ctx, func(ctx context.Context, repos store.Repositories) error {
		existing, err := repos.Users().FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.DuplicateUser(email)
		}
		return repos.Users().Create(ctx, u)
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.DuplicateUser(email)
		}
		if _, ok := apperror.As(err); !ok {
			uc.logger.Error("failed to register user", zap.String("email", email), zap.Error(err))
		}
		return nil, err
	}

	uc.logger.Info("user registered", zap.Int64("user_id", u.ID))
	return u, nil
}

func (uc *userUseCase) Login(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error) {
	email := normalizeEmail(input.Email)

	u, err := uc.store.Repositories().Users().FindByEmail(ctx, email)
	if err != nil {
		uc.logger.Error("failed to look up user", zap.Error(err))
		return nil, err
	}

	hash := uc.dummyHash
	if u != nil {
		hash = []byte(u.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(input.Password)); err != nil || u == nil {
		return nil, apperror.InvalidCredentials()
	}

	token, expiresAt, err := uc.tokens.Issue(u.ID, u.Email)
	if err != nil {
		uc.logger.Error("failed to sign token", zap.Int64("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	err = uc.store.Execute(ctx, func(ctx context.Context, repos store.Repositories) error {
		return auditlog.NewRecorder(repos.AuditLogs()).
			Record(ctx, model.AuditActionLogin, model.TableUsers, u.ID, u.ID)
	})
	if err != nil {
		uc.logger.Error("failed to record login", zap.Int64("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	return &dto.LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}, nil
}

// Me returns the caller's profile. A token for a user that no longer exists is unauthenticated.
func (uc *userUseCase) Me(ctx context.Context, userID int64) (*model.User, error) {
	if userID <= 0 {
		return nil, apperror.Unauthenticated()
	}
	u, err := uc.store.Repositories().Users().FindByID(ctx, userID)
	if err != nil {
		uc.logger.Error("failed to load user", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	if u == nil {
		return nil, apperror.Unauthenticated()
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
