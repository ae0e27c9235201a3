package usecase

import (
	"context"

	"dialog-messenger-api/dto/req"
	"dialog-messenger-api/dto/res"
	"dialog-messenger-api/entity"
)

type DialogUsecase interface {
	// CreateDialog is idempotent per unordered user pair: a second create
	// in either order returns the existing dialog unchanged.
	CreateDialog(ctx context.Context, requesterID string, request *req.CreateDialogRequest) (*entity.Dialog, error)
	DeleteDialog(ctx context.Context, requesterID, dialogID string) error
	GetDialogs(ctx context.Context, userID string) ([]res.DialogResponse, error)
	GetPartnerInfo(ctx context.Context, requesterID, partnerID string) (res.UserResponse, error)
}
