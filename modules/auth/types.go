package auth

import (
	domain "github.com/avinash111921/MovieHub/domain/user"
)

// Service names registered in the service container.
const (
	ServiceRegister       = "register"
	ServiceLogin          = "login"
	ServiceLogout         = "logout"
	ServiceRefreshToken   = "refresh-token"
	ServiceValidateToken  = "validate-token"
	ServiceGetUser        = "get-user"
	ServiceListUsers      = "list-users"
	ServiceChangePassword = "change-password"
	ServiceUpdateProfile  = "update-profile"
)

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	FullName   string `json:"fullname"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Avatar     string `json:"avatar"`
	CoverImage string `json:"cover_image,omitempty"`
}

// RegisterResponse represents a user registration response.
type RegisterResponse struct {
	User *domain.Public `json:"user"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a user login response with tokens.
type LoginResponse struct {
	User         *domain.Public `json:"user"`
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresIn    int64          `json:"expires_in"`
	TokenType    string         `json:"token_type"`
}

// LogoutRequest represents a logout request.
type LogoutRequest struct {
	UserID string `json:"user_id"`
}

// LogoutResponse represents a logout response.
type LogoutResponse struct {
	Success bool `json:"success"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse represents a token refresh response.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// ValidateTokenRequest represents a token validation request.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse represents a token validation response.
type ValidateTokenResponse struct {
	Valid    bool   `json:"valid"`
	UserID   string `json:"user_id,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Error    string `json:"error,omitempty"`
}

// GetUserRequest represents a get user request.
type GetUserRequest struct {
	UserID string `json:"user_id"`
}

// GetUserResponse represents a get user response.
type GetUserResponse struct {
	User *domain.Public `json:"user"`
}

// ListUsersRequest asks for all users except the requester (chat sidebar).
type ListUsersRequest struct {
	ExcludeUserID string `json:"exclude_user_id"`
}

// ListUsersResponse carries the sidebar user list.
type ListUsersResponse struct {
	Users []*domain.Public `json:"users"`
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	UserID      string `json:"user_id"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePasswordResponse represents a password change response.
type ChangePasswordResponse struct {
	Success bool `json:"success"`
}

// UpdateProfileRequest represents a partial profile update. Nil fields are
// left unchanged.
type UpdateProfileRequest struct {
	UserID     string  `json:"user_id"`
	FullName   *string `json:"fullname,omitempty"`
	Email      *string `json:"email,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
	CoverImage *string `json:"cover_image,omitempty"`
}

// UpdateProfileResponse carries the updated user.
type UpdateProfileResponse struct {
	User *domain.Public `json:"user"`
}
