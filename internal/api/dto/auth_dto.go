package dto

// LoginRequest is the form-encoded password grant body.
type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// TokenResponse is the login response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
