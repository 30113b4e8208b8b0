// internal/services/auth_service_test.go
package services

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bazarco/backend/internal/models"
	"github.com/bazarco/backend/internal/utils"
)

func (s *ServiceTestSuite) signup(email string) *AuthResponse {
	resp, err := s.auth.Signup(s.ctx, &SignupRequest{Email: email, Password: "secret123", Name: "Ada"})
	s.Require().NoError(err)
	return resp
}

func (s *ServiceTestSuite) TestSignupAndLogin() {
	utils.SetJWTSecret(s.cfg.JWT.SecretKey)
	resp := s.signup("Ada@Example.com")

	s.Equal("ada@example.com", resp.User.Email)
	s.Equal(models.UserRoleBuyer, resp.User.Role)
	claims, err := utils.ValidateJWT(resp.Token)
	s.Require().NoError(err)
	s.Equal(resp.User.ID, claims.UserID)

	_, err = s.auth.Signup(s.ctx, &SignupRequest{Email: "ada@example.com", Password: "secret123"})
	s.ErrorIs(err, models.ErrEmailTaken)

	login, err := s.auth.Login(s.ctx, &LoginRequest{Email: "ADA@example.com", Password: "secret123"})
	s.Require().NoError(err)
	s.Equal(resp.User.ID, login.User.ID)

	_, err = s.auth.Login(s.ctx, &LoginRequest{Email: "ada@example.com", Password: "wrong-pass1"})
	s.ErrorIs(err, ErrInvalidCredentials)
	_, err = s.auth.Login(s.ctx, &LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceTestSuite) TestSignupValidation() {
	for _, req := range []SignupRequest{
		{Email: "not-an-email", Password: "secret123"},
		{Email: "a@example.com", Password: "short1"},
		{Email: "a@example.com", Password: "lettersonly"},
	} {
		req := req
		_, err := s.auth.Signup(s.ctx, &req)
		s.Error(err)
		s.NotEmpty(utils.GetValidationErrors(err), req.Password)
	}
}

func (s *ServiceTestSuite) TestDevLogin() {
	_, err := s.auth.DevLogin(s.ctx, &DevLoginRequest{Secret: "dev"})
	s.ErrorIs(err, ErrDevLoginNotAllowed)

	s.cfg.DevLogin.Enabled = true
	s.cfg.DevLogin.Secret = "dev"

	_, err = s.auth.DevLogin(s.ctx, &DevLoginRequest{Secret: "nope"})
	s.ErrorIs(err, ErrDevLoginNotAllowed)

	_, err = s.auth.DevLogin(s.ctx, &DevLoginRequest{Secret: "dev"})
	s.ErrorIs(err, models.ErrUserNotFound)

	s.signup("dev@bazarco.test")
	resp, err := s.auth.DevLogin(s.ctx, &DevLoginRequest{Secret: "dev"})
	s.Require().NoError(err)
	s.Equal("dev@bazarco.test", resp.User.Email)
}

func (s *ServiceTestSuite) TestPasswordResetFlow() {
	s.signup("ada@example.com")

	s.Require().NoError(s.auth.ForgotPassword(s.ctx, &ForgotPasswordRequest{Email: "unknown@example.com"}))
	s.Empty(s.mailer.sent)

	s.Require().NoError(s.auth.ForgotPassword(s.ctx, &ForgotPasswordRequest{Email: "ada@example.com"}))
	s.Require().Len(s.mailer.sent, 1)
	link := s.mailer.sent[0].link
	s.True(strings.HasPrefix(link, "https://bazarco.test/reset-password?token="), link)

	parsed, err := url.Parse(link)
	s.Require().NoError(err)
	token := parsed.Query().Get("token")
	s.Len(token, 64)

	err = s.auth.ResetPassword(s.ctx, &ResetPasswordRequest{Token: "bogus", NewPassword: "newsecret1"})
	s.ErrorIs(err, ErrInvalidResetToken)

	s.Require().NoError(s.auth.ResetPassword(s.ctx, &ResetPasswordRequest{Token: token, NewPassword: "newsecret1"}))
	err = s.auth.ResetPassword(s.ctx, &ResetPasswordRequest{Token: token, NewPassword: "another1"})
	s.ErrorIs(err, ErrInvalidResetToken, "tokens are single use")

	_, err = s.auth.Login(s.ctx, &LoginRequest{Email: "ada@example.com", Password: "newsecret1"})
	s.NoError(err)
}

func (s *ServiceTestSuite) TestExpiredResetToken() {
	s.signup("ada@example.com")
	s.Require().NoError(s.auth.ForgotPassword(s.ctx, &ForgotPasswordRequest{Email: "ada@example.com"}))
	parsed, err := url.Parse(s.mailer.sent[0].link)
	s.Require().NoError(err)

	s.auth.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	err = s.auth.ResetPassword(s.ctx, &ResetPasswordRequest{Token: parsed.Query().Get("token"), NewPassword: "newsecret1"})
	s.ErrorIs(err, ErrInvalidResetToken)
}

func (s *ServiceTestSuite) TestForgotPasswordMailFailure() {
	s.signup("ada@example.com")
	s.mailer.err = errMailDown

	err := s.auth.ForgotPassword(s.ctx, &ForgotPasswordRequest{Email: "ada@example.com"})
	s.Error(err)
}

func (s *ServiceTestSuite) TestProfile() {
	resp := s.signup("ada@example.com")
	id := uuid.MustParse(resp.User.ID)

	profile, err := s.auth.Profile(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("Ada", profile.Name)

	updated, err := s.auth.UpdateProfile(s.ctx, id, &UpdateProfileRequest{Name: "  " + strings.Repeat("n", 120) + " "})
	s.Require().NoError(err)
	s.Len(updated.Name, 100)

	_, err = s.auth.UpdateProfile(s.ctx, id, &UpdateProfileRequest{Name: "   "})
	s.Error(err)

	_, err = s.auth.Profile(s.ctx, uuid.New())
	s.ErrorIs(err, models.ErrUserNotFound)
}
