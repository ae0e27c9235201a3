package usecase

import (
	"context"

	"dialog-messenger-api/dto/req"
	"dialog-messenger-api/dto/res"
	"dialog-messenger-api/entity"
)

type BlockUsecase interface {
	// Block fills the dialog's single block slot. A dialog that is already
	// blocked, by either side, cannot be blocked again.
	Block(ctx context.Context, requesterID string, request *req.BlockDialogRequest) (*entity.BlockedDialog, error)
	// Unblock lifts the block; only the initiator may do so.
	Unblock(ctx context.Context, requesterID string, request *req.BlockDialogRequest) error
	CheckBlocked(ctx context.Context, requesterID string, request *req.BlockDialogRequest) (res.BlockStatusResponse, error)
}
