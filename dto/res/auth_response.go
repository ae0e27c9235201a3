package res

type TokenResponse struct {
	Token string `json:"token"`
}
