package req

type CreateDialogRequest struct {
	UserID1 string `json:"userId1" validate:"required"`
	UserID2 string `json:"userId2" validate:"required"`
}

type DeleteDialogRequest struct {
	ChatID string `json:"chatId" validate:"required"`
}
