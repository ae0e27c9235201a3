package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dialog-messenger-api/entity"
	"dialog-messenger-api/enum"
)

type DialogRepository interface {
	// FindForPair looks up the dialog for an unordered user pair. Returns
	// (nil, nil) when no dialog exists.
	FindForPair(ctx context.Context, userA, userB string) (*entity.Dialog, error)
	FindByID(ctx context.Context, id string) (*entity.Dialog, error)
	FindAllByUserID(ctx context.Context, userID string) ([]entity.Dialog, error)
	// CreateWithMembers persists the dialog and both membership rows in a
	// single transaction.
	CreateWithMembers(ctx context.Context, dialog *entity.Dialog, members []entity.DialogMember) error
	// DeleteWithMembers removes membership rows then the dialog row; the
	// dialog's messages cascade via the store's referential rule.
	DeleteWithMembers(ctx context.Context, dialogID string) error
	HasDialogAccess(ctx context.Context, userID, dialogID string) (bool, error)
	// PartnerIDs returns the counterpart user id of every dialog the user
	// participates in.
	PartnerIDs(ctx context.Context, userID string) ([]string, error)
}

type dialogRepository struct {
	Repository[entity.Dialog]
}

func NewDialogRepository(db *gorm.DB) DialogRepository {
	return &dialogRepository{Repository[entity.Dialog]{DB: db}}
}

func (repo *dialogRepository) FindForPair(ctx context.Context, userA, userB string) (*entity.Dialog, error) {
	var dialog entity.Dialog
	err := repo.DB.WithContext(ctx).
		Where("type = ?", enum.DIALOG).
		Where("(creator_id = ? AND participant_id = ?) OR (creator_id = ? AND participant_id = ?)",
			userA, userB, userB, userA).
		First(&dialog).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dialog, nil
}

func (repo *dialogRepository) FindByID(ctx context.Context, id string) (*entity.Dialog, error) {
	var dialog entity.Dialog
	if err := repo.FindById(ctx, &dialog, id); err != nil {
		return nil, err
	}
	return &dialog, nil
}

func (repo *dialogRepository) FindAllByUserID(ctx context.Context, userID string) ([]entity.Dialog, error) {
	var dialogs []entity.Dialog
	err := repo.DB.WithContext(ctx).
		Where("type = ?", enum.DIALOG).
		Where("creator_id = ? OR participant_id = ?", userID, userID).
		Find(&dialogs).Error
	if err != nil {
		return nil, err
	}
	return dialogs, nil
}

func (repo *dialogRepository) CreateWithMembers(ctx context.Context, dialog *entity.Dialog, members []entity.DialogMember) error {
	return repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dialog).Error; err != nil {
			return err
		}
		for i := range members {
			members[i].DialogID = dialog.ID
		}
		return tx.Create(&members).Error
	})
}

func (repo *dialogRepository) DeleteWithMembers(ctx context.Context, dialogID string) error {
	return repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dialog_id = ?", dialogID).Delete(&entity.DialogMember{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", dialogID).Delete(&entity.Dialog{}).Error
	})
}

func (repo *dialogRepository) HasDialogAccess(ctx context.Context, userID, dialogID string) (bool, error) {
	var count int64
	err := repo.DB.WithContext(ctx).
		Model(&entity.Dialog{}).
		Where("id = ? AND type = ?", dialogID, enum.DIALOG).
		Where("creator_id = ? OR participant_id = ?", userID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *dialogRepository) PartnerIDs(ctx context.Context, userID string) ([]string, error) {
	dialogs, err := repo.FindAllByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	partners := make([]string, 0, len(dialogs))
	for _, d := range dialogs {
		if d.CreatorID == userID {
			partners = append(partners, d.ParticipantID)
		} else {
			partners = append(partners, d.CreatorID)
		}
	}
	return partners, nil
}
