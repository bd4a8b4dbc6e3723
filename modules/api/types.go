package api

// ErrorResponse is the JSON error body for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is the JSON body for GET /health.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UpdateAccountRequest represents a partial account update.
type UpdateAccountRequest struct {
	FullName *string `json:"fullname,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// UpdateTweetRequest represents a JSON tweet update body.
type UpdateTweetRequest struct {
	Content string `json:"content"`
}
