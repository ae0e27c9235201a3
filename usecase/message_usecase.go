package usecase

import (
	"context"

	"dialog-messenger-api/dto"
	"dialog-messenger-api/entity"
)

type MessageUsecase interface {
	// PostMessage persists an incoming realtime message and fans it out to
	// both dialog participants. New messages are always unread.
	PostMessage(ctx context.Context, event *dto.NewMessageEvent) (*entity.Message, error)
	GetMessages(ctx context.Context, requesterID, dialogID string) ([]entity.Message, error)
	DeleteMessage(ctx context.Context, requesterID, messageID string) error
	// MarkRead flips isRead on the counterpart's messages in the dialog,
	// never on forUserID's own messages.
	MarkRead(ctx context.Context, requesterID, dialogID, forUserID string) error
	// GetLatestMessages returns the most recent message of each accessible
	// dialog; dialogs without messages are omitted.
	GetLatestMessages(ctx context.Context, requesterID string, dialogIDs []string) ([]entity.Message, error)
}
