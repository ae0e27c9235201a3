package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dialog-messenger-api/entity"
)

type ReactionRepository interface {
	Save(ctx context.Context, reaction *entity.MessageReaction) error
	// FindByMessageAndUser returns (nil, nil) when the user has no
	// reaction on the message.
	FindByMessageAndUser(ctx context.Context, messageID, userID string) (*entity.MessageReaction, error)
	FindAllByMessageID(ctx context.Context, messageID string) ([]entity.MessageReaction, error)
	UpdateEmoji(ctx context.Context, messageID, userID string, emojiID int) error
	DeleteByMessageAndUser(ctx context.Context, messageID, userID string) error
}

type reactionRepository struct {
	Repository[entity.MessageReaction]
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{Repository[entity.MessageReaction]{DB: db}}
}

func (repo *reactionRepository) FindByMessageAndUser(ctx context.Context, messageID, userID string) (*entity.MessageReaction, error) {
	var reaction entity.MessageReaction
	err := repo.DB.WithContext(ctx).
		Where("message_id = ? AND user_id = ?", messageID, userID).
		First(&reaction).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (repo *reactionRepository) FindAllByMessageID(ctx context.Context, messageID string) ([]entity.MessageReaction, error) {
	var reactions []entity.MessageReaction
	err := repo.DB.WithContext(ctx).
		Where("message_id = ?", messageID).
		Find(&reactions).Error
	return reactions, err
}

func (repo *reactionRepository) UpdateEmoji(ctx context.Context, messageID, userID string, emojiID int) error {
	return repo.DB.WithContext(ctx).
		Model(&entity.MessageReaction{}).
		Where("message_id = ? AND user_id = ?", messageID, userID).
		Update("emoji_id", emojiID).Error
}

func (repo *reactionRepository) DeleteByMessageAndUser(ctx context.Context, messageID, userID string) error {
	return repo.DB.WithContext(ctx).
		Where("message_id = ? AND user_id = ?", messageID, userID).
		Delete(&entity.MessageReaction{}).Error
}
