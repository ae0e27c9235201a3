package req

// Pointer fields distinguish "not sent" from "set to empty".
type EditProfileRequest struct {
	UserName  *string `json:"userName"`
	AvatarURL *string `json:"avatarUrl"`
}
