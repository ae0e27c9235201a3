package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dialog-messenger-api/entity"
)

type MessageRepository interface {
	Save(ctx context.Context, message *entity.Message) error
	FindByID(ctx context.Context, id string) (*entity.Message, error)
	// FindAllByDialogID returns the dialog's messages in chronological
	// order (created_at ascending).
	FindAllByDialogID(ctx context.Context, dialogID string) ([]entity.Message, error)
	// FindLatestByDialogID returns the most recent message of the dialog,
	// or (nil, nil) when the dialog has none.
	FindLatestByDialogID(ctx context.Context, dialogID string) (*entity.Message, error)
	DeleteByID(ctx context.Context, id string) error
	// MarkDialogRead flips isRead on every message of the dialog not sent
	// by the given user.
	MarkDialogRead(ctx context.Context, dialogID, readerID string) error
}

type messageRepository struct {
	Repository[entity.Message]
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{Repository[entity.Message]{DB: db}}
}

func (repo *messageRepository) FindByID(ctx context.Context, id string) (*entity.Message, error) {
	var message entity.Message
	if err := repo.FindById(ctx, &message, id); err != nil {
		return nil, err
	}
	return &message, nil
}

func (repo *messageRepository) FindAllByDialogID(ctx context.Context, dialogID string) ([]entity.Message, error) {
	var messages []entity.Message
	err := repo.DB.WithContext(ctx).
		Where("dialog_id = ?", dialogID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (repo *messageRepository) FindLatestByDialogID(ctx context.Context, dialogID string) (*entity.Message, error) {
	var message entity.Message
	err := repo.DB.WithContext(ctx).
		Where("dialog_id = ?", dialogID).
		Order("created_at DESC").
		First(&message).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (repo *messageRepository) DeleteByID(ctx context.Context, id string) error {
	return repo.DB.WithContext(ctx).Where("id = ?", id).Delete(&entity.Message{}).Error
}

func (repo *messageRepository) MarkDialogRead(ctx context.Context, dialogID, readerID string) error {
	return repo.DB.WithContext(ctx).
		Model(&entity.Message{}).
		Where("dialog_id = ? AND sender_id <> ?", dialogID, readerID).
		Update("is_read", true).Error
}
