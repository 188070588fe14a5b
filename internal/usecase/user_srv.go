package usecase

import (
	"context"

	"lawncare-booking/internal/data/repository"
	"lawncare-booking/internal/dto/response"

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID int64) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		us.log.Warn("Profile lookup failed", zap.Error(err), zap.Int64("user_id", userID))
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}
