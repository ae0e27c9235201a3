package usecase

import (
	"context"

	"dialog-messenger-api/dto/req"
	"dialog-messenger-api/dto/res"
)

type UserUsecase interface {
	Register(ctx context.Context, request *req.RegisterRequest) (res.TokenResponse, error)
	Login(ctx context.Context, request *req.LoginRequest) (res.TokenResponse, error)
	GetByID(ctx context.Context, userID string) (res.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, request *req.EditProfileRequest) (res.UserResponse, error)
	SearchByUserName(ctx context.Context, userName string) (*res.UserResponse, error)
	GetUsersInfo(ctx context.Context, ids []string) ([]res.UserResponse, error)
}
