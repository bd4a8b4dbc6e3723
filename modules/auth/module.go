package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/avinash111921/MovieHub/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AuthModule provides account and authentication services.
type AuthModule struct {
	db      *gorm.DB
	service *AuthService
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule.
func NewModule() *AuthModule {
	dbPath := os.Getenv("MOVIEHUB_DB_PATH")
	if dbPath == "" {
		dbPath = "moviehub.db"
	}
	return &AuthModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start initializes the auth module.
func (m *AuthModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	repo := NewUserRepository(db)
	hasher := NewPasswordHasher()
	jwtManager := NewJWTManager(loadJWTConfig())

	m.service = NewAuthService(repo, hasher, jwtManager)

	log.Printf("[auth] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *AuthModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func(mono.ServiceContainer) error{
		ServiceRegister: func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, ServiceRegister, json.Unmarshal, json.Marshal, m.handleRegister)
		},
		ServiceLogin: func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, ServiceLogin, json.Unmarshal, json.Marshal, m.handleLogin)
		},
		ServiceLogout: func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, ServiceLogout, json.Unmarshal, json.Marshal, m.handleLogout)
		},
		ServiceRefreshToken: func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, ServiceRefreshToken, json.Unmarshal, json.Marshal, m.handleRefresh)
		},
		ServiceValidateToken: func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, ServiceValidateToken, json.Unmarshal, json.Marshal, m.handleValidateToken)
		},
		ServiceGetUser: func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, ServiceGetUser, json.Unmarshal, json.Marshal, m.handleGetUser)
		},
		ServiceListUsers: func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, ServiceListUsers, json.Unmarshal, json.Marshal, m.handleListUsers)
		},
		ServiceChangePassword: func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, ServiceChangePassword, json.Unmarshal, json.Marshal, m.handleChangePassword)
		},
		ServiceUpdateProfile: func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, ServiceUpdateProfile, json.Unmarshal, json.Marshal, m.handleUpdateProfile)
		},
	}

	for name, register := range services {
		if err := register(container); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[auth] Registered services: register, login, logout, refresh-token, validate-token, get-user, list-users, change-password, update-profile")
	return nil
}

// handleRegister handles user registration.
func (m *AuthModule) handleRegister(ctx context.Context, req RegisterRequest, _ *mono.Msg) (RegisterResponse, error) {
	user, err := m.service.Register(ctx, RegisterParams{
		FullName:   req.FullName,
		Email:      req.Email,
		Username:   req.Username,
		Password:   req.Password,
		Avatar:     req.Avatar,
		CoverImage: req.CoverImage,
	})
	if err != nil {
		return RegisterResponse{}, err
	}
	return RegisterResponse{User: user.ToPublic()}, nil
}

// handleLogin handles user login.
func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	user, pair, err := m.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{
		User:         user.ToPublic(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		TokenType:    pair.TokenType,
	}, nil
}

// handleLogout handles logout.
func (m *AuthModule) handleLogout(ctx context.Context, req LogoutRequest, _ *mono.Msg) (LogoutResponse, error) {
	if err := m.service.Logout(ctx, req.UserID); err != nil {
		return LogoutResponse{}, err
	}
	return LogoutResponse{Success: true}, nil
}

// handleRefresh handles token refresh.
func (m *AuthModule) handleRefresh(ctx context.Context, req RefreshRequest, _ *mono.Msg) (RefreshResponse, error) {
	pair, err := m.service.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		return RefreshResponse{}, err
	}
	return RefreshResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		TokenType:    pair.TokenType,
	}, nil
}

// handleValidateToken handles token validation. Validation failures are
// reported in the response body rather than as errors so callers can
// distinguish an invalid token from a transport failure.
func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		return ValidateTokenResponse{Valid: false, Error: err.Error()}, nil
	}
	return ValidateTokenResponse{
		Valid:    true,
		UserID:   claims.UserID,
		Email:    claims.Email,
		Username: claims.Username,
	}, nil
}

// handleGetUser handles user retrieval.
func (m *AuthModule) handleGetUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (GetUserResponse, error) {
	user, err := m.service.GetUser(ctx, req.UserID)
	if err != nil {
		return GetUserResponse{}, err
	}
	return GetUserResponse{User: user.ToPublic()}, nil
}

// handleListUsers handles the sidebar user listing.
func (m *AuthModule) handleListUsers(ctx context.Context, req ListUsersRequest, _ *mono.Msg) (ListUsersResponse, error) {
	users, err := m.service.ListUsers(ctx, req.ExcludeUserID)
	if err != nil {
		return ListUsersResponse{}, err
	}
	resp := ListUsersResponse{Users: make([]*domain.Public, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, u.ToPublic())
	}
	return resp, nil
}

// handleChangePassword handles password changes.
func (m *AuthModule) handleChangePassword(ctx context.Context, req ChangePasswordRequest, _ *mono.Msg) (ChangePasswordResponse, error) {
	if err := m.service.ChangePassword(ctx, req.UserID, req.OldPassword, req.NewPassword); err != nil {
		return ChangePasswordResponse{}, err
	}
	return ChangePasswordResponse{Success: true}, nil
}

// handleUpdateProfile handles partial profile updates.
func (m *AuthModule) handleUpdateProfile(ctx context.Context, req UpdateProfileRequest, _ *mono.Msg) (UpdateProfileResponse, error) {
	user, err := m.service.UpdateProfile(ctx, req.UserID, ProfileUpdate{
		FullName:   req.FullName,
		Email:      req.Email,
		Avatar:     req.Avatar,
		CoverImage: req.CoverImage,
	})
	if err != nil {
		return UpdateProfileResponse{}, err
	}
	return UpdateProfileResponse{User: user.ToPublic()}, nil
}

// loadJWTConfig loads JWT configuration from environment variables.
func loadJWTConfig() JWTConfig {
	config := DefaultJWTConfig()

	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.SecretKey = secret
	}

	if issuer := os.Getenv("JWT_ISSUER"); issuer != "" {
		config.Issuer = issuer
	}

	return config
}
