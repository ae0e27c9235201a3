package req

type DeleteMessageRequest struct {
	ID string `json:"id" validate:"required"`
}

type ReadMessageRequest struct {
	DialogID string `json:"dialogId" validate:"required"`
	UserID   string `json:"userId" validate:"required"`
}

type LastedMessageRequest struct {
	ChatIDs []string `json:"chatIds" validate:"required"`
}
