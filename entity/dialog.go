package entity

import "dialog-messenger-api/enum"

// Dialog is a two-party conversation. CreatorName and ParticipantName are
// snapshots taken at creation time, not a live join.
type Dialog struct {
	BaseEntity
	Type            enum.DialogType `json:"type" gorm:"type:varchar(10);not null"`
	CreatorID       string          `json:"creatorId" gorm:"type:varchar(255);not null;index"`
	ParticipantID   string          `json:"participantId" gorm:"type:varchar(255);not null;index"`
	CreatorName     string          `json:"creatorName" gorm:"type:varchar(100);not null"`
	ParticipantName string          `json:"participantName" gorm:"type:varchar(100);not null"`
	AvatarURL       string          `json:"avatarUrl,omitempty" gorm:"type:text"`

	Members  []DialogMember `json:"-" gorm:"foreignKey:DialogID;constraint:OnDelete:CASCADE;"`
	Messages []Message      `json:"-" gorm:"foreignKey:DialogID;constraint:OnDelete:CASCADE;"`
}

type DialogMember struct {
	ID       string `gorm:"primaryKey;type:varchar(255);default:gen_random_uuid()"`
	DialogID string `gorm:"type:varchar(255);not null;index"`
	UserID   string `gorm:"type:varchar(255);not null;index"`

	Dialog Dialog `gorm:"foreignKey:DialogID;references:ID;constraint:OnDelete:CASCADE;"`
	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
}
