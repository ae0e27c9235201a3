package req

type BlockDialogRequest struct {
	DialogID string `json:"dialogId" validate:"required"`
	UserID   string `json:"userId" validate:"required"`
}
