// internal/services/notify_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bazarco/backend/internal/repositories"
	"github.com/bazarco/backend/internal/utils"
)

type NotifyStatus string

const (
	NotifyStatusCreated         NotifyStatus = "created"
	NotifyStatusAlreadyNotified NotifyStatus = "already_notified"
)

type NotifyRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// NotifyService manages the pre-launch waitlist.
type NotifyService struct {
	invitations *repositories.InvitationRepository
	mailer      Mailer
}

func NewNotifyService(invitations *repositories.InvitationRepository, mailer Mailer) *NotifyService {
	return &NotifyService{
		invitations: invitations,
		mailer:      mailer,
	}
}

// SignUp adds the email to the waitlist and sends the welcome email once.
// A failed welcome email does not undo the signup.
func (s *NotifyService) SignUp(ctx context.Context, req *NotifyRequest) (NotifyStatus, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}

	created, err := s.invitations.Create(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if !created {
		return NotifyStatusAlreadyNotified, nil
	}

	if err := s.mailer.SendNotifyEmail(ctx, req.Email); err != nil {
		logrus.WithError(err).WithField("email", req.Email).Warn("Notify email failed")
	}
	return NotifyStatusCreated, nil
}
