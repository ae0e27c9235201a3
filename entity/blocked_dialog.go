package entity

// BlockedDialog is the single block slot of a dialog. The unique index on
// DialogID makes the one-active-block invariant structural; UserID records
// the initiator, the only user allowed to lift the block.
type BlockedDialog struct {
	BaseEntity
	DialogID string `json:"dialogId" gorm:"type:varchar(255);not null;uniqueIndex"`
	UserID   string `json:"userId" gorm:"type:varchar(255);not null"`

	Dialog Dialog `json:"-" gorm:"foreignKey:DialogID;references:ID;constraint:OnDelete:CASCADE;"`
	User   User   `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
}
