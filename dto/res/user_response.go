package res

type UserResponse struct {
	ID        string `json:"id"`
	UserName  string `json:"userName"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatarUrl"`
	Status    string `json:"status"`
}
