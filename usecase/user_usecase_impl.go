package usecase

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dialog-messenger-api/apperror"
	"dialog-messenger-api/dto/req"
	"dialog-messenger-api/dto/res"
	"dialog-messenger-api/entity"
	"dialog-messenger-api/enum"
	"dialog-messenger-api/repository"
	"dialog-messenger-api/security"
	"dialog-messenger-api/util"
)

type UserUsecaseImpl struct {
	UserRepository repository.UserRepository
	Presence       PresenceReader
	*validator.Validate
	*logrus.Logger
	*security.JWT
}

func NewUserUsecase(
	userRepository repository.UserRepository,
	presence PresenceReader,
	validate *validator.Validate,
	logger *logrus.Logger,
	jwt *security.JWT,
) UserUsecase {
	return &UserUsecaseImpl{
		UserRepository: userRepository,
		Presence:       presence,
		Validate:       validate,
		Logger:         logger,
		JWT:            jwt,
	}
}

func (uc *UserUsecaseImpl) Register(ctx context.Context, request *req.RegisterRequest) (res.TokenResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.TokenResponse{}, apperror.BadRequest("invalid email or password")
	}

	_, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err == nil {
		return res.TokenResponse{}, apperror.BadRequest("user already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return res.TokenResponse{}, apperror.Internal("registration failed")
	}

	hash, err := util.HashPassword(request.Password)
	if err != nil {
		return res.TokenResponse{}, apperror.Internal("registration failed")
	}

	user := &entity.User{
		Email:    request.Email,
		Password: hash,
	}
	if err := uc.UserRepository.Save(ctx, user); err != nil {
		uc.Logger.WithError(err).Error("failed to save new user")
		return res.TokenResponse{}, apperror.Internal("registration failed")
	}

	token, err := uc.JWT.GenerateToken(user)
	if err != nil {
		return res.TokenResponse{}, apperror.Internal("registration failed")
	}
	uc.Logger.Infof("registered user %s", user.ID)
	return res.TokenResponse{Token: token}, nil
}

func (uc *UserUsecaseImpl) Login(ctx context.Context, request *req.LoginRequest) (res.TokenResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.TokenResponse{}, apperror.BadRequest("invalid email or password")
	}

	user, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return res.TokenResponse{}, apperror.BadRequest("user not found")
	}
	if err != nil {
		return res.TokenResponse{}, apperror.Internal("login failed")
	}

	if !util.ComparePassword(user.Password, request.Password) {
		return res.TokenResponse{}, apperror.BadRequest("wrong password")
	}

	token, err := uc.JWT.GenerateToken(user)
	if err != nil {
		return res.TokenResponse{}, apperror.Internal("login failed")
	}
	return res.TokenResponse{Token: token}, nil
}

func (uc *UserUsecaseImpl) GetByID(ctx context.Context, userID string) (res.UserResponse, error) {
	user, err := uc.UserRepository.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return res.UserResponse{}, apperror.NotFound("user not found")
	}
	if err != nil {
		return res.UserResponse{}, apperror.Internal("failed to load user")
	}
	return uc.toResponse(ctx, user, true), nil
}

func (uc *UserUsecaseImpl) UpdateProfile(ctx context.Context, userID string, request *req.EditProfileRequest) (res.UserResponse, error) {
	user, err := uc.UserRepository.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return res.UserResponse{}, apperror.NotFound("user not found")
	}
	if err != nil {
		return res.UserResponse{}, apperror.Internal("failed to load user")
	}

	if request.UserName != nil {
		user.UserName = *request.UserName
	}
	if request.AvatarURL != nil {
		user.AvatarURL = *request.AvatarURL
	}

	if err := uc.UserRepository.Update(ctx, user); err != nil {
		uc.Logger.WithError(err).Error("failed to update profile")
		return res.UserResponse{}, apperror.Internal("failed to update profile")
	}
	return uc.toResponse(ctx, user, true), nil
}

func (uc *UserUsecaseImpl) SearchByUserName(ctx context.Context, userName string) (*res.UserResponse, error) {
	if userName == "" {
		return nil, apperror.BadRequest("userName is required")
	}

	user, err := uc.UserRepository.FindByUserName(ctx, userName)
	if err != nil {
		return nil, apperror.Internal("user search failed")
	}
	if user == nil {
		return nil, nil
	}
	response := res.UserResponse{
		ID:        user.ID,
		UserName:  user.UserName,
		AvatarURL: user.AvatarURL,
	}
	return &response, nil
}

func (uc *UserUsecaseImpl) GetUsersInfo(ctx context.Context, ids []string) ([]res.UserResponse, error) {
	users, err := uc.UserRepository.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Internal("users not found")
	}

	responses := make([]res.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, uc.toResponse(ctx, &users[i], false))
	}
	return responses, nil
}

func (uc *UserUsecaseImpl) toResponse(ctx context.Context, user *entity.User, withEmail bool) res.UserResponse {
	status := user.Status
	if online, err := uc.Presence.IsOnline(ctx, user.ID); err == nil && online {
		status = enum.UserStatusOnline
	}

	response := res.UserResponse{
		ID:        user.ID,
		UserName:  user.UserName,
		AvatarURL: user.AvatarURL,
		Status:    string(status),
	}
	if withEmail {
		response.Email = user.Email
	}
	return response
}
