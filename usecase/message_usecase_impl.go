package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dialog-messenger-api/apperror"
	"dialog-messenger-api/dto"
	"dialog-messenger-api/entity"
	"dialog-messenger-api/enum"
	"dialog-messenger-api/repository"
)

type MessageUsecaseImpl struct {
	MessageRepository repository.MessageRepository
	DialogRepository  repository.DialogRepository
	Access            AccessValidator
	Notifier          Notifier
	*logrus.Logger
}

func NewMessageUsecase(
	messageRepository repository.MessageRepository,
	dialogRepository repository.DialogRepository,
	access AccessValidator,
	notifier Notifier,
	logger *logrus.Logger,
) MessageUsecase {
	return &MessageUsecaseImpl{
		MessageRepository: messageRepository,
		DialogRepository:  dialogRepository,
		Access:            access,
		Notifier:          notifier,
		Logger:            logger,
	}
}

func (uc *MessageUsecaseImpl) PostMessage(ctx context.Context, event *dto.NewMessageEvent) (*entity.Message, error) {
	if event.SenderID == "" || event.DialogID == "" {
		return nil, apperror.BadRequest("senderId and dialogId are required")
	}

	hasAccess, err := uc.Access.CanAccessDialog(ctx, event.SenderID, event.DialogID)
	if err != nil {
		return nil, apperror.Internal("failed to check dialog access")
	}
	if !hasAccess {
		return nil, apperror.Forbidden("sender is not a member of this dialog")
	}

	message := &entity.Message{
		Type:     enum.MessageType(event.Type),
		DialogID: event.DialogID,
		SenderID: event.SenderID,
		Time:     event.Time,
		IsRead:   false,

		IsForwarded:       event.IsForwarded,
		OriginalSenderID:  event.OriginalSenderID,
		OriginalMessageID: event.OriginalMessageID,
		ForwardedFrom:     event.ForwardedFrom,
	}
	switch message.Type {
	case enum.MessageTypeText:
		message.Text = event.Text
	case enum.MessageTypeImage:
		message.ImgPath = event.Content
	default:
		return nil, apperror.BadRequest("unknown message type")
	}

	if err := uc.MessageRepository.Save(ctx, message); err != nil {
		uc.Logger.WithError(err).Error("failed to save message")
		return nil, apperror.Internal("failed to save message")
	}

	dialog, err := uc.DialogRepository.FindByID(ctx, event.DialogID)
	if err != nil {
		uc.Logger.WithError(err).Error("failed to load dialog for fan-out")
		return message, nil
	}
	uc.Notifier.SendToUser(dialog.CreatorID, dto.EventMessageCreated, message)
	uc.Notifier.SendToUser(dialog.ParticipantID, dto.EventMessageCreated, message)

	return message, nil
}

func (uc *MessageUsecaseImpl) GetMessages(ctx context.Context, requesterID, dialogID string) ([]entity.Message, error) {
	if dialogID == "" {
		return nil, apperror.BadRequest("dialog id is required")
	}

	hasAccess, err := uc.Access.CanAccessDialog(ctx, requesterID, dialogID)
	if err != nil {
		return nil, apperror.Internal("failed to check dialog access")
	}
	if !hasAccess {
		return nil, apperror.Forbidden("no access to this dialog")
	}

	messages, err := uc.MessageRepository.FindAllByDialogID(ctx, dialogID)
	if err != nil {
		return nil, apperror.Internal("messages not found")
	}
	return messages, nil
}

func (uc *MessageUsecaseImpl) DeleteMessage(ctx context.Context, requesterID, messageID string) error {
	if messageID == "" {
		return apperror.BadRequest("message id is required")
	}

	hasAccess, err := uc.Access.CanAccessMessage(ctx, requesterID, messageID)
	if err != nil {
		return apperror.Internal("failed to check message access")
	}
	if !hasAccess {
		return apperror.Forbidden("no access to this message")
	}

	message, err := uc.MessageRepository.FindByID(ctx, messageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("message not found")
	}
	if err != nil {
		return apperror.Internal("failed to load message")
	}
	if message.SenderID != requesterID {
		return apperror.Forbidden("only own messages can be deleted")
	}

	if err := uc.MessageRepository.DeleteByID(ctx, messageID); err != nil {
		uc.Logger.WithError(err).Errorf("failed to delete message %s", messageID)
		return apperror.Internal("failed to delete message")
	}
	return nil
}

func (uc *MessageUsecaseImpl) MarkRead(ctx context.Context, requesterID, dialogID, forUserID string) error {
	if dialogID == "" || forUserID == "" {
		return apperror.BadRequest("dialogId and userId are required")
	}
	if requesterID != forUserID {
		return apperror.Forbidden("cannot mark messages read for another user")
	}

	hasAccess, err := uc.Access.CanAccessDialog(ctx, requesterID, dialogID)
	if err != nil {
		return apperror.Internal("failed to check dialog access")
	}
	if !hasAccess {
		return apperror.Forbidden("no access to this dialog")
	}

	if err := uc.MessageRepository.MarkDialogRead(ctx, dialogID, forUserID); err != nil {
		uc.Logger.WithError(err).Error("failed to mark messages read")
		return apperror.Internal("failed to update read status")
	}
	return nil
}

func (uc *MessageUsecaseImpl) GetLatestMessages(ctx context.Context, requesterID string, dialogIDs []string) ([]entity.Message, error) {
	latest := make([]entity.Message, 0, len(dialogIDs))
	for _, dialogID := range dialogIDs {
		hasAccess, err := uc.Access.CanAccessDialog(ctx, requesterID, dialogID)
		if err != nil {
			return nil, apperror.Internal("failed to check dialog access")
		}
		if !hasAccess {
			continue
		}

		message, err := uc.MessageRepository.FindLatestByDialogID(ctx, dialogID)
		if err != nil {
			return nil, apperror.Internal("latest messages not found")
		}
		if message != nil {
			latest = append(latest, *message)
		}
	}
	return latest, nil
}
