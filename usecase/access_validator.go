package usecase

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dialog-messenger-api/repository"
)

// AccessValidator gates every mutating operation: a user may only act on
// dialogs where they are creator or participant, and on messages whose
// parent dialog passes the same check. Both predicates are read-only.
type AccessValidator interface {
	CanAccessDialog(ctx context.Context, userID, dialogID string) (bool, error)
	CanAccessMessage(ctx context.Context, userID, messageID string) (bool, error)
}

type accessValidator struct {
	dialogRepository  repository.DialogRepository
	messageRepository repository.MessageRepository
}

func NewAccessValidator(dialogRepository repository.DialogRepository, messageRepository repository.MessageRepository) AccessValidator {
	return &accessValidator{dialogRepository: dialogRepository, messageRepository: messageRepository}
}

func (v *accessValidator) CanAccessDialog(ctx context.Context, userID, dialogID string) (bool, error) {
	return v.dialogRepository.HasDialogAccess(ctx, userID, dialogID)
}

func (v *accessValidator) CanAccessMessage(ctx context.Context, userID, messageID string) (bool, error) {
	message, err := v.messageRepository.FindByID(ctx, messageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v.CanAccessDialog(ctx, userID, message.DialogID)
}
