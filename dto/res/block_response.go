package res

type BlockStatusResponse struct {
	DialogID    string `json:"dialogId,omitempty"`
	Blocked     bool   `json:"blocked"`
	UserBlocked string `json:"userBlocked,omitempty"`
}
