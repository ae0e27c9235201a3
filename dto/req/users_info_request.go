package req

type UsersInfoRequest struct {
	ChatIDs []string `json:"chatIds" validate:"required"`
}
