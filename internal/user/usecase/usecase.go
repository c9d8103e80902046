package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/user"
	"github.com/fekuna/omnipos-catalog-service/internal/user/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

type userUseCase struct {
	repo       user.Repository
	tokens     TokenIssuer
	logger     logger.ZapLogger
	now        func() time.Time
	bcryptCost int
}

func NewUserUseCase(repo user.Repository, tokens TokenIssuer, log logger.ZapLogger) user.UseCase {
	return &userUseCase{
		repo:       repo,
		tokens:     tokens,
		logger:     log,
		now:        func() time.Time { return time.Now().UTC() },
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (uc *userUseCase) Authenticate(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error) {
	u, err := uc.repo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(input.Password)); err != nil {
		uc.logger.Debug("password mismatch", zap.String("user_id", u.ID))
		return nil, user.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.tokens.Issue(u.ID)
	if err != nil {
		uc.logger.Error("failed to issue token", zap.String("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	return &dto.LoginResult{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

func (uc *userUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), uc.bcryptCost)
	if err != nil {
		return nil, err
	}

	id := input.ID
	if id == "" {
		id = uuid.New().String()
	}

	u := &model.User{
		ID:       id,
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: string(hash),
		Audit:    model.NewAudit(input.CallerID, uc.now()),
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		uc.logger.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return u, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, id string) (*model.User, error) {
	return uc.repo.FindByID(ctx, id)
}
