package entity

import "dialog-messenger-api/enum"

// Message carries either Text or ImgPath depending on Type, never both.
type Message struct {
	BaseEntity
	Text     string           `json:"text,omitempty" gorm:"type:TEXT"`
	ImgPath  string           `json:"imgPath,omitempty" gorm:"type:varchar(255)"`
	Type     enum.MessageType `json:"type" gorm:"type:varchar(7);not null;default:'text'"`
	Time     string           `json:"time,omitempty" gorm:"type:varchar(120)"`
	IsRead   bool             `json:"isRead" gorm:"default:false"`
	DialogID string           `json:"dialogId" gorm:"type:varchar(255);not null;index"`
	SenderID string           `json:"senderId" gorm:"type:varchar(255);not null;index"`

	// Forwarding lineage, copied through verbatim from the source message.
	IsForwarded       bool   `json:"isForwarded" gorm:"default:false"`
	OriginalSenderID  string `json:"originalSenderId,omitempty" gorm:"type:varchar(255)"`
	OriginalMessageID string `json:"originalMessageId,omitempty" gorm:"type:varchar(255)"`
	ForwardedFrom     string `json:"forwardedFrom,omitempty" gorm:"type:varchar(100)"`

	Dialog    Dialog            `json:"-" gorm:"foreignKey:DialogID;references:ID"`
	Sender    User              `json:"-" gorm:"foreignKey:SenderID;references:ID"`
	Reactions []MessageReaction `json:"-" gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE;"`
}
