package user

import (
	"context"

	"github.com/fekuna/omnipos-warehouse-service/internal/model"
	"github.com/fekuna/omnipos-warehouse-service/internal/user/dto"
)

type UseCase interface {
	Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error)
	Login(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error)
	Me(ctx context.Context, userID int64) (*model.User, error)
}
