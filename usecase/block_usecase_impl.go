package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"dialog-messenger-api/apperror"
	"dialog-messenger-api/dto"
	"dialog-messenger-api/dto/req"
	"dialog-messenger-api/dto/res"
	"dialog-messenger-api/entity"
	"dialog-messenger-api/repository"
)

type BlockUsecaseImpl struct {
	BlockRepository  repository.BlockRepository
	DialogRepository repository.DialogRepository
	Access           AccessValidator
	Notifier         Notifier
	*logrus.Logger
}

func NewBlockUsecase(
	blockRepository repository.BlockRepository,
	dialogRepository repository.DialogRepository,
	access AccessValidator,
	notifier Notifier,
	logger *logrus.Logger,
) BlockUsecase {
	return &BlockUsecaseImpl{
		BlockRepository:  blockRepository,
		DialogRepository: dialogRepository,
		Access:           access,
		Notifier:         notifier,
		Logger:           logger,
	}
}

func (uc *BlockUsecaseImpl) Block(ctx context.Context, requesterID string, request *req.BlockDialogRequest) (*entity.BlockedDialog, error) {
	if err := uc.authorize(ctx, requesterID, request); err != nil {
		return nil, err
	}

	existing, err := uc.BlockRepository.FindByDialogID(ctx, request.DialogID)
	if err != nil {
		return nil, apperror.Internal("failed to check block status")
	}
	if existing != nil {
		return nil, apperror.Conflict("chat is already blocked")
	}

	block := &entity.BlockedDialog{
		DialogID: request.DialogID,
		UserID:   request.UserID,
	}
	if err := uc.BlockRepository.Save(ctx, block); err != nil {
		uc.Logger.WithError(err).Error("failed to save block")
		return nil, apperror.Internal("failed to block chat")
	}

	uc.notifyParticipants(ctx, request.DialogID, dto.EventBlockedResponse, dto.BlockStatusEvent{
		DialogID:    request.DialogID,
		UserBlocked: request.UserID,
		Blocked:     true,
	})
	return block, nil
}

func (uc *BlockUsecaseImpl) Unblock(ctx context.Context, requesterID string, request *req.BlockDialogRequest) error {
	if err := uc.authorize(ctx, requesterID, request); err != nil {
		return err
	}

	existing, err := uc.BlockRepository.FindByDialogID(ctx, request.DialogID)
	if err != nil {
		return apperror.Internal("failed to check block status")
	}
	if existing == nil {
		return apperror.Conflict("chat is not blocked")
	}
	if existing.UserID != request.UserID {
		return apperror.Forbidden("only the block initiator can unblock this chat")
	}

	if err := uc.BlockRepository.DeleteByDialogAndUser(ctx, request.DialogID, request.UserID); err != nil {
		uc.Logger.WithError(err).Error("failed to delete block")
		return apperror.Internal("failed to unblock chat")
	}

	uc.notifyParticipants(ctx, request.DialogID, dto.EventUnBlockedResponse, dto.BlockStatusEvent{
		DialogID:    request.DialogID,
		UserBlocked: request.UserID,
		Blocked:     false,
	})
	return nil
}

func (uc *BlockUsecaseImpl) CheckBlocked(ctx context.Context, requesterID string, request *req.BlockDialogRequest) (res.BlockStatusResponse, error) {
	if err := uc.authorize(ctx, requesterID, request); err != nil {
		return res.BlockStatusResponse{}, err
	}

	existing, err := uc.BlockRepository.FindByDialogID(ctx, request.DialogID)
	if err != nil {
		return res.BlockStatusResponse{}, apperror.Internal("failed to check block status")
	}
	if existing == nil {
		return res.BlockStatusResponse{Blocked: false}, nil
	}
	return res.BlockStatusResponse{
		DialogID:    request.DialogID,
		Blocked:     true,
		UserBlocked: existing.UserID,
	}, nil
}

func (uc *BlockUsecaseImpl) authorize(ctx context.Context, requesterID string, request *req.BlockDialogRequest) error {
	if request.DialogID == "" || request.UserID == "" {
		return apperror.BadRequest("dialogId and userId are required")
	}
	if requesterID != request.UserID {
		return apperror.Forbidden("cannot manage blocks on behalf of another user")
	}

	hasAccess, err := uc.Access.CanAccessDialog(ctx, requesterID, request.DialogID)
	if err != nil {
		return apperror.Internal("failed to check dialog access")
	}
	if !hasAccess {
		return apperror.Forbidden("no access to this dialog")
	}
	return nil
}

func (uc *BlockUsecaseImpl) notifyParticipants(ctx context.Context, dialogID, event string, data any) {
	dialog, err := uc.DialogRepository.FindByID(ctx, dialogID)
	if err != nil {
		uc.Logger.WithError(err).Error("failed to load dialog for fan-out")
		return
	}
	uc.Notifier.SendToUser(dialog.CreatorID, event, data)
	uc.Notifier.SendToUser(dialog.ParticipantID, event, data)
}
