package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dialog-messenger-api/apperror"
	"dialog-messenger-api/dto"
	"dialog-messenger-api/entity"
	"dialog-messenger-api/repository"
	"dialog-messenger-api/util"
)

type ReactionUsecaseImpl struct {
	ReactionRepository repository.ReactionRepository
	MessageRepository  repository.MessageRepository
	DialogRepository   repository.DialogRepository
	Access             AccessValidator
	Notifier           Notifier
	Keys               *util.KeyedMutex
	*logrus.Logger
}

func NewReactionUsecase(
	reactionRepository repository.ReactionRepository,
	messageRepository repository.MessageRepository,
	dialogRepository repository.DialogRepository,
	access AccessValidator,
	notifier Notifier,
	logger *logrus.Logger,
) ReactionUsecase {
	return &ReactionUsecaseImpl{
		ReactionRepository: reactionRepository,
		MessageRepository:  messageRepository,
		DialogRepository:   dialogRepository,
		Access:             access,
		Notifier:           notifier,
		Keys:               util.NewKeyedMutex(),
		Logger:             logger,
	}
}

func (uc *ReactionUsecaseImpl) UpsertReaction(ctx context.Context, event *dto.NewReactionEvent) error {
	if event.MessageID == "" || event.UserID == "" {
		return apperror.BadRequest("messageId and userId are required")
	}

	hasAccess, err := uc.Access.CanAccessMessage(ctx, event.UserID, event.MessageID)
	if err != nil {
		return apperror.Internal("failed to check message access")
	}
	if !hasAccess {
		return apperror.Forbidden("no access to this message")
	}

	// The find-then-act sequence below is racy for concurrent edits by the
	// same user on the same message, so it runs under a per-pair lock. The
	// unique (message_id, user_id) index backs this up at the store level.
	key := event.MessageID + "|" + event.UserID
	uc.Keys.Lock(key)
	defer uc.Keys.Unlock(key)

	existing, err := uc.ReactionRepository.FindByMessageAndUser(ctx, event.MessageID, event.UserID)
	if err != nil {
		return apperror.Internal("failed to look up reaction")
	}

	switch {
	case existing == nil && event.EmojiID == nil:
		// Nothing to delete, nothing to create.
		return nil

	case existing == nil:
		reaction := &entity.MessageReaction{
			MessageID: event.MessageID,
			UserID:    event.UserID,
			EmojiID:   *event.EmojiID,
		}
		if err := uc.ReactionRepository.Save(ctx, reaction); err != nil {
			uc.Logger.WithError(err).Error("failed to save reaction")
			return apperror.Internal("failed to save reaction")
		}
		return uc.broadcast(ctx, event.MessageID, dto.EventReaction, reaction)

	case event.EmojiID == nil:
		if err := uc.ReactionRepository.DeleteByMessageAndUser(ctx, event.MessageID, event.UserID); err != nil {
			uc.Logger.WithError(err).Error("failed to delete reaction")
			return apperror.Internal("failed to delete reaction")
		}
		return uc.broadcast(ctx, event.MessageID, dto.EventDeleteReaction, dto.DeleteReactionEvent{
			MessageID: event.MessageID,
			UserID:    event.UserID,
		})

	default:
		if err := uc.ReactionRepository.UpdateEmoji(ctx, event.MessageID, event.UserID, *event.EmojiID); err != nil {
			uc.Logger.WithError(err).Error("failed to update reaction")
			return apperror.Internal("failed to update reaction")
		}
		updated, err := uc.ReactionRepository.FindByMessageAndUser(ctx, event.MessageID, event.UserID)
		if err != nil || updated == nil {
			return apperror.Internal("failed to reload reaction")
		}
		return uc.broadcast(ctx, event.MessageID, dto.EventReaction, updated)
	}
}

func (uc *ReactionUsecaseImpl) GetReactions(ctx context.Context, requesterID, dialogID, messageID string) ([]entity.MessageReaction, error) {
	if messageID == "" || dialogID == "" {
		return nil, apperror.BadRequest("messageId and dialogId are required")
	}

	hasAccess, err := uc.Access.CanAccessDialog(ctx, requesterID, dialogID)
	if err != nil {
		return nil, apperror.Internal("failed to check dialog access")
	}
	if !hasAccess {
		return nil, apperror.Forbidden("no access to this dialog")
	}

	reactions, err := uc.ReactionRepository.FindAllByMessageID(ctx, messageID)
	if err != nil {
		return nil, apperror.Internal("reactions not found")
	}
	return reactions, nil
}

// broadcast targets only the two dialog participants, never all
// connections.
func (uc *ReactionUsecaseImpl) broadcast(ctx context.Context, messageID, event string, data any) error {
	message, err := uc.MessageRepository.FindByID(ctx, messageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return apperror.Internal("failed to load message for fan-out")
	}
	dialog, err := uc.DialogRepository.FindByID(ctx, message.DialogID)
	if err != nil {
		uc.Logger.WithError(err).Error("failed to load dialog for fan-out")
		return nil
	}

	uc.Notifier.SendToUser(dialog.CreatorID, event, data)
	uc.Notifier.SendToUser(dialog.ParticipantID, event, data)
	return nil
}
