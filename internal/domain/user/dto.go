package user

type UserResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

type QRTokenResponse struct {
	UserID  string `json:"user_id"`
	QRToken string `json:"qr_token"`
}
