package entity

import "dialog-messenger-api/enum"

type User struct {
	BaseEntity
	UserName  string          `json:"userName" gorm:"unique;type:varchar(50)"`
	Email     string          `json:"email" gorm:"unique;type:varchar(100)"`
	Password  string          `json:"-" gorm:"type:varchar(255)"`
	AvatarURL string          `json:"avatarUrl,omitempty" gorm:"type:text"`
	Status    enum.UserStatus `json:"status" gorm:"type:varchar(10);default:'offline'"`

	Messages  []Message         `json:"-" gorm:"foreignKey:SenderID"`
	Reactions []MessageReaction `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}
