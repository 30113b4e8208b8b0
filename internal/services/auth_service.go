// internal/services/auth_service.go
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bazarco/backend/internal/config"
	"github.com/bazarco/backend/internal/models"
	"github.com/bazarco/backend/internal/repositories"
	"github.com/bazarco/backend/internal/utils"
)

const (
	resetTokenTTL     = time.Hour
	maxUserNameLength = 100
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDevLoginNotAllowed = errors.New("dev login not allowed")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

type AuthService struct {
	users  *repositories.UserRepository
	mailer Mailer
	cfg    *config.Config
	now    func() time.Time
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Name     string `json:"name" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type DevLoginRequest struct {
	Secret string `json:"secret"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" validate:"notblank"`
}

type UserResponse struct {
	ID    string          `json:"id"`
	Email string          `json:"email"`
	Name  string          `json:"name,omitempty"`
	Role  models.UserRole `json:"role"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func NewAuthService(users *repositories.UserRepository, mailer Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		users:  users,
		mailer: mailer,
		cfg:    cfg,
		now:    time.Now,
	}
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
		Role:  user.EffectiveRole(),
	}
}

// Signup always creates a buyer.
func (s *AuthService) Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user := &models.User{
		Email: req.Email,
		Name:  truncateName(req.Name),
		Role:  models.UserRoleBuyer,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// DevLogin signs in as the configured development user when dev login is
// enabled and the shared secret matches.
func (s *AuthService) DevLogin(ctx context.Context, req *DevLoginRequest) (*AuthResponse, error) {
	dev := s.cfg.DevLogin
	if !dev.Enabled || dev.Secret == "" ||
		subtle.ConstantTimeCompare([]byte(req.Secret), []byte(dev.Secret)) != 1 {
		return nil, ErrDevLoginNotAllowed
	}

	user, err := s.users.FindByEmail(ctx, dev.Email)
	if err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

// ForgotPassword never reveals whether the email is registered.
func (s *AuthService) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	if err := s.users.SetResetToken(ctx, user.ID, utils.HashString(token), s.now().Add(resetTokenTTL)); err != nil {
		return err
	}

	base := strings.TrimRight(s.cfg.Frontend.BaseURL, "/")
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", base, token)
	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, resetLink); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	logrus.WithField("user_id", user.ID).Info("Password reset requested")
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.users.FindByResetToken(ctx, utils.HashString(req.Token), s.now())
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.ResetPassword(ctx, user.ID, user.PasswordHash)
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.users.UpdateName(ctx, userID, truncateName(req.Name))
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *AuthService) issueToken(user *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateJWT(user.ID, user.Email, string(user.EffectiveRole()), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func truncateName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= maxUserNameLength {
		return name
	}
	return string([]rune(name)[:maxUserNameLength])
}
