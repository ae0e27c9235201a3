package entity

// MessageReaction holds at most one row per (message, user) pair. The unique
// index backs the engine-level upsert serialization.
type MessageReaction struct {
	BaseEntity
	MessageID string `json:"messageId" gorm:"type:varchar(255);not null;uniqueIndex:idx_reaction_message_user"`
	UserID    string `json:"userId" gorm:"type:varchar(255);not null;uniqueIndex:idx_reaction_message_user"`
	EmojiID   int    `json:"emojiId" gorm:"not null"`

	Message Message `json:"-" gorm:"foreignKey:MessageID;references:ID;constraint:OnDelete:CASCADE;"`
	User    User    `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
}
