package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dialog-messenger-api/entity"
)

type BlockRepository interface {
	Save(ctx context.Context, block *entity.BlockedDialog) error
	// FindByDialogID returns the dialog's block slot, or (nil, nil) when
	// the dialog is not blocked.
	FindByDialogID(ctx context.Context, dialogID string) (*entity.BlockedDialog, error)
	DeleteByDialogAndUser(ctx context.Context, dialogID, userID string) error
}

type blockRepository struct {
	Repository[entity.BlockedDialog]
}

func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{Repository[entity.BlockedDialog]{DB: db}}
}

func (repo *blockRepository) FindByDialogID(ctx context.Context, dialogID string) (*entity.BlockedDialog, error) {
	var block entity.BlockedDialog
	err := repo.DB.WithContext(ctx).
		Where("dialog_id = ?", dialogID).
		First(&block).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (repo *blockRepository) DeleteByDialogAndUser(ctx context.Context, dialogID, userID string) error {
	return repo.DB.WithContext(ctx).
		Where("dialog_id = ? AND user_id = ?", dialogID, userID).
		Delete(&entity.BlockedDialog{}).Error
}
