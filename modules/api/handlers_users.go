package api

import (
	"encoding/json"

	"github.com/avinash111921/MovieHub/modules/auth"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// registerUser handles POST /api/v1/users/register. Multipart form: fullname,
// email, username, password fields plus a required avatar image and an
// optional coverImage.
func (m *APIModule) registerUser(c *fiber.Ctx) error {
	fullName := c.FormValue("fullname")
	email := c.FormValue("email")
	username := c.FormValue("username")
	password := c.FormValue("password")

	avatarData, avatarName, err := readFormFile(c, "avatar")
	if err != nil {
		return handleServiceError(c, err)
	}
	if avatarData == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Avatar image is required",
		})
	}
	avatar, err := m.mediaAdapter.Upload(c.UserContext(), avatarName, avatarData)
	if err != nil {
		return handleServiceError(c, err)
	}

	coverURL := ""
	if coverData, coverName, err := readFormFile(c, "coverImage"); err != nil {
		return handleServiceError(c, err)
	} else if coverData != nil {
		cover, err := m.mediaAdapter.Upload(c.UserContext(), coverName, coverData)
		if err != nil {
			return handleServiceError(c, err)
		}
		coverURL = cover.URL
	}

	req := auth.RegisterRequest{
		FullName:   fullName,
		Email:      email,
		Username:   username,
		Password:   password,
		Avatar:     avatar.URL,
		CoverImage: coverURL,
	}
	var resp auth.RegisterResponse
	if err := m.callAuth(c, auth.ServiceRegister, &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// loginUser handles POST /api/v1/users/login.
func (m *APIModule) loginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Email and password are required",
		})
	}

	authReq := auth.LoginRequest{Email: req.Email, Password: req.Password}
	var resp auth.LoginResponse
	if err := m.callAuth(c, auth.ServiceLogin, &authReq, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(resp)
}

// refreshToken handles POST /api/v1/users/refresh-token.
func (m *APIModule) refreshToken(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Refresh token is required",
		})
	}

	authReq := auth.RefreshRequest{RefreshToken: req.RefreshToken}
	var resp auth.RefreshResponse
	if err := m.callAuth(c, auth.ServiceRefreshToken, &authReq, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(resp)
}

// logoutUser handles POST /api/v1/users/logout.
func (m *APIModule) logoutUser(c *fiber.Ctx) error {
	claims := claimsFromContext(c)

	req := auth.LogoutRequest{UserID: claims.UserID}
	var resp auth.LogoutResponse
	if err := m.callAuth(c, auth.ServiceLogout, &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(resp)
}

// changePassword handles POST /api/v1/users/change-password.
func (m *APIModule) changePassword(c *fiber.Ctx) error {
	claims := claimsFromContext(c)

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	authReq := auth.ChangePasswordRequest{
		UserID:      claims.UserID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}
	var resp auth.ChangePasswordResponse
	if err := m.callAuth(c, auth.ServiceChangePassword, &authReq, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(resp)
}

// currentUser handles GET /api/v1/users/current-user.
func (m *APIModule) currentUser(c *fiber.Ctx) error {
	claims := claimsFromContext(c)

	user, err := m.authAdapter.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(user)
}

// updateAccount handles PATCH /api/v1/users/update-account.
func (m *APIModule) updateAccount(c *fiber.Ctx) error {
	claims := claimsFromContext(c)

	var req UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	authReq := auth.UpdateProfileRequest{
		UserID:   claims.UserID,
		FullName: req.FullName,
		Email:    req.Email,
	}
	var resp auth.UpdateProfileResponse
	if err := m.callAuth(c, auth.ServiceUpdateProfile, &authReq, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(resp)
}

// updateAvatar handles PATCH /api/v1/users/avatar (multipart, field "avatar").
func (m *APIModule) updateAvatar(c *fiber.Ctx) error {
	return m.updateProfileImage(c, "avatar")
}

// updateCoverImage handles PATCH /api/v1/users/cover-image (multipart, field
// "coverImage").
func (m *APIModule) updateCoverImage(c *fiber.Ctx) error {
	return m.updateProfileImage(c, "coverImage")
}

func (m *APIModule) updateProfileImage(c *fiber.Ctx, field string) error {
	claims := claimsFromContext(c)

	data, name, err := readFormFile(c, field)
	if err != nil {
		return handleServiceError(c, err)
	}
	if data == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Image file is required",
		})
	}

	uploaded, err := m.mediaAdapter.Upload(c.UserContext(), name, data)
	if err != nil {
		return handleServiceError(c, err)
	}

	authReq := auth.UpdateProfileRequest{UserID: claims.UserID}
	if field == "avatar" {
		authReq.Avatar = &uploaded.URL
	} else {
		authReq.CoverImage = &uploaded.URL
	}
	var resp auth.UpdateProfileResponse
	if err := m.callAuth(c, auth.ServiceUpdateProfile, &authReq, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(resp)
}

// callAuth invokes one auth service through the service container.
func (m *APIModule) callAuth(c *fiber.Ctx, service string, req, resp any) error {
	return helper.CallRequestReplyService[any, any](
		c.UserContext(),
		m.authContainer,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	)
}
