package user

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/user/dto"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type UseCase interface {
	Authenticate(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error)
	Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
}
