package res

// DialogResponse describes a dialog from the requesting user's point of
// view: the "other side" of the pair.
type DialogResponse struct {
	DialogID          string `json:"dialogId"`
	ParticipantID     string `json:"participantId"`
	ChatName          string `json:"chatName"`
	ParticipantAvatar string `json:"participantAvatar"`
	Status            string `json:"status"`
}
