package usecase

import (
	"context"

	"dialog-messenger-api/dto"
	"dialog-messenger-api/entity"
)

type ReactionUsecase interface {
	// UpsertReaction applies the user's reaction to a message: create when
	// none exists, update in place when one does, delete when the emoji id
	// is null. A null emoji with no existing reaction is a no-op. Upserts
	// for the same (message, user) pair are serialized.
	UpsertReaction(ctx context.Context, event *dto.NewReactionEvent) error
	GetReactions(ctx context.Context, requesterID, dialogID, messageID string) ([]entity.MessageReaction, error)
}
