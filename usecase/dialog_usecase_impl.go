package usecase

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dialog-messenger-api/apperror"
	"dialog-messenger-api/dto"
	"dialog-messenger-api/dto/req"
	"dialog-messenger-api/dto/res"
	"dialog-messenger-api/entity"
	"dialog-messenger-api/enum"
	"dialog-messenger-api/repository"
)

type DialogUsecaseImpl struct {
	DialogRepository repository.DialogRepository
	UserRepository   repository.UserRepository
	Access           AccessValidator
	Notifier         Notifier
	Presence         PresenceReader
	*validator.Validate
	*logrus.Logger
}

func NewDialogUsecase(
	dialogRepository repository.DialogRepository,
	userRepository repository.UserRepository,
	access AccessValidator,
	notifier Notifier,
	presence PresenceReader,
	validate *validator.Validate,
	logger *logrus.Logger,
) DialogUsecase {
	return &DialogUsecaseImpl{
		DialogRepository: dialogRepository,
		UserRepository:   userRepository,
		Access:           access,
		Notifier:         notifier,
		Presence:         presence,
		Validate:         validate,
		Logger:           logger,
	}
}

func (uc *DialogUsecaseImpl) CreateDialog(ctx context.Context, requesterID string, request *req.CreateDialogRequest) (*entity.Dialog, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return nil, apperror.BadRequest("both user ids are required")
	}
	if request.UserID1 == request.UserID2 {
		return nil, apperror.BadRequest("cannot create a dialog with yourself")
	}
	if requesterID != request.UserID1 {
		return nil, apperror.Forbidden("cannot create a chat on behalf of another user")
	}

	existing, err := uc.DialogRepository.FindForPair(ctx, request.UserID1, request.UserID2)
	if err != nil {
		uc.Logger.WithError(err).Error("failed to look up existing dialog")
		return nil, apperror.Internal("failed to create chat")
	}
	if existing != nil {
		return existing, nil
	}

	creator, err := uc.findUser(ctx, request.UserID1)
	if err != nil {
		return nil, err
	}
	participant, err := uc.findUser(ctx, request.UserID2)
	if err != nil {
		return nil, err
	}

	newDialog := &entity.Dialog{
		Type:            enum.DIALOG,
		CreatorID:       creator.ID,
		ParticipantID:   participant.ID,
		CreatorName:     creator.UserName,
		ParticipantName: participant.UserName,
	}
	members := []entity.DialogMember{
		{UserID: creator.ID},
		{UserID: participant.ID},
	}

	if err := uc.DialogRepository.CreateWithMembers(ctx, newDialog, members); err != nil {
		uc.Logger.WithError(err).Error("failed to create dialog with members")
		return nil, apperror.Internal("failed to create chat")
	}

	uc.Notifier.SendToUser(creator.ID, dto.EventChatCreated, dto.ChatCreatedEvent{
		ID:        newDialog.ID,
		ChatName:  participant.UserName,
		AvatarURL: participant.AvatarURL,
		OtherID:   participant.ID,
		Status:    string(uc.liveStatus(ctx, participant)),
	})
	uc.Notifier.SendToUser(participant.ID, dto.EventNewChatNotification, dto.NewChatNotificationEvent{
		DialogID:          newDialog.ID,
		ParticipantID:     creator.ID,
		ParticipantName:   creator.UserName,
		ParticipantAvatar: creator.AvatarURL,
		Status:            string(uc.liveStatus(ctx, creator)),
	})

	return newDialog, nil
}

func (uc *DialogUsecaseImpl) DeleteDialog(ctx context.Context, requesterID, dialogID string) error {
	if dialogID == "" {
		return apperror.BadRequest("chat id is required")
	}

	hasAccess, err := uc.Access.CanAccessDialog(ctx, requesterID, dialogID)
	if err != nil {
		return apperror.Internal("failed to check chat access")
	}
	if !hasAccess {
		return apperror.Forbidden("no access to this chat")
	}

	dialog, err := uc.DialogRepository.FindByID(ctx, dialogID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("chat not found")
	}
	if err != nil {
		return apperror.Internal("failed to load chat")
	}

	if err := uc.DialogRepository.DeleteWithMembers(ctx, dialogID); err != nil {
		uc.Logger.WithError(err).Errorf("failed to delete dialog %s", dialogID)
		return apperror.Internal("failed to delete chat")
	}

	uc.Notifier.SendToUser(dialog.CreatorID, dto.EventChatDeleted, dto.ChatDeletedEvent{ChatID: dialogID})
	uc.Notifier.SendToUser(dialog.ParticipantID, dto.EventChatDeleted, dto.ChatDeletedEvent{ChatID: dialogID})
	return nil
}

func (uc *DialogUsecaseImpl) GetDialogs(ctx context.Context, userID string) ([]res.DialogResponse, error) {
	dialogs, err := uc.DialogRepository.FindAllByUserID(ctx, userID)
	if err != nil {
		uc.Logger.WithError(err).Error("failed to list dialogs")
		return nil, apperror.Internal("chats not found")
	}

	partnerIDs := make([]string, 0, len(dialogs))
	for _, d := range dialogs {
		partnerIDs = append(partnerIDs, otherSide(&d, userID))
	}
	partners, err := uc.UserRepository.FindByIDs(ctx, partnerIDs)
	if err != nil {
		return nil, apperror.Internal("chats not found")
	}
	byID := make(map[string]entity.User, len(partners))
	for _, p := range partners {
		byID[p.ID] = p
	}

	responses := make([]res.DialogResponse, 0, len(dialogs))
	for _, d := range dialogs {
		other, ok := byID[otherSide(&d, userID)]
		if !ok {
			continue
		}
		responses = append(responses, res.DialogResponse{
			DialogID:          d.ID,
			ParticipantID:     other.ID,
			ChatName:          other.UserName,
			ParticipantAvatar: other.AvatarURL,
			Status:            string(uc.liveStatus(ctx, &other)),
		})
	}
	return responses, nil
}

func (uc *DialogUsecaseImpl) GetPartnerInfo(ctx context.Context, requesterID, partnerID string) (res.UserResponse, error) {
	if partnerID == "" {
		return res.UserResponse{}, apperror.BadRequest("user id is required")
	}

	shared, err := uc.DialogRepository.FindForPair(ctx, requesterID, partnerID)
	if err != nil {
		return res.UserResponse{}, apperror.Internal("partner not found")
	}
	if shared == nil {
		return res.UserResponse{}, apperror.Forbidden("no shared dialog with this user")
	}

	partner, err := uc.findUser(ctx, partnerID)
	if err != nil {
		return res.UserResponse{}, err
	}
	return res.UserResponse{
		ID:        partner.ID,
		UserName:  partner.UserName,
		AvatarURL: partner.AvatarURL,
		Status:    string(uc.liveStatus(ctx, partner)),
	}, nil
}

func (uc *DialogUsecaseImpl) findUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.UserRepository.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("user not found")
	}
	if err != nil {
		return nil, apperror.Internal("failed to load user")
	}
	return user, nil
}

// liveStatus prefers the presence cache over the persisted status column;
// on a cache miss or error the column wins.
func (uc *DialogUsecaseImpl) liveStatus(ctx context.Context, user *entity.User) enum.UserStatus {
	online, err := uc.Presence.IsOnline(ctx, user.ID)
	if err != nil {
		return user.Status
	}
	if online {
		return enum.UserStatusOnline
	}
	return user.Status
}

func otherSide(dialog *entity.Dialog, userID string) string {
	if dialog.CreatorID == userID {
		return dialog.ParticipantID
	}
	return dialog.CreatorID
}
