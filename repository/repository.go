package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository is the shared gorm helper embedded by the per-entity
// repositories.
type Repository[T any] struct {
	DB *gorm.DB
}

func (repo Repository[T]) Save(ctx context.Context, entity *T) error {
	return repo.DB.WithContext(ctx).Create(entity).Error
}

func (repo Repository[T]) Update(ctx context.Context, entity *T) error {
	return repo.DB.WithContext(ctx).Save(entity).Error
}

func (repo Repository[T]) Delete(ctx context.Context, entity *T) error {
	return repo.DB.WithContext(ctx).Delete(entity).Error
}

func (repo Repository[T]) FindById(ctx context.Context, entity *T, id string) error {
	return repo.DB.WithContext(ctx).Where("id = ?", id).Take(entity).Error
}

func (repo Repository[T]) FindAll(ctx context.Context, entities *[]T) error {
	return repo.DB.WithContext(ctx).Find(entities).Error
}
