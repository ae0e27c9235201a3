package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dialog-messenger-api/entity"
	"dialog-messenger-api/enum"
)

type UserRepository interface {
	Save(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUserName(ctx context.Context, userName string) (*entity.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	UpdateStatus(ctx context.Context, userID string, status enum.UserStatus) error
}

type userRepository struct {
	Repository[entity.User]
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{Repository[entity.User]{DB: db}}
}

func (repo *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := repo.FindById(ctx, &user, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := repo.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *userRepository) FindByUserName(ctx context.Context, userName string) (*entity.User, error) {
	var user entity.User
	err := repo.DB.WithContext(ctx).Where("user_name = ?", userName).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *userRepository) FindByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	var users []entity.User
	err := repo.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (repo *userRepository) UpdateStatus(ctx context.Context, userID string, status enum.UserStatus) error {
	return repo.DB.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", userID).
		Update("status", status).Error
}
