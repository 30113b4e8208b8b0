// internal/services/reminder_service.go
package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/bazarco/backend/internal/repositories"
)

type CampaignError struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

type CampaignResult struct {
	Total  int             `json:"total"`
	Sent   int             `json:"sent"`
	Failed int             `json:"failed"`
	Errors []CampaignError `json:"errors"`
}

type ReminderService struct {
	invitations *repositories.InvitationRepository
	mailer      Mailer
}

func NewReminderService(invitations *repositories.InvitationRepository, mailer Mailer) *ReminderService {
	return &ReminderService{
		invitations: invitations,
		mailer:      mailer,
	}
}

// RunCampaign emails every waitlisted address. A failed send is counted and
// the campaign moves on.
func (s *ReminderService) RunCampaign(ctx context.Context) (*CampaignResult, error) {
	emails, err := s.invitations.ListEmails(ctx)
	if err != nil {
		return nil, err
	}

	result := &CampaignResult{Total: len(emails), Errors: []CampaignError{}}
	for _, email := range emails {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := s.mailer.SendReminderEmail(ctx, email); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, CampaignError{Email: email, Error: err.Error()})
			logrus.WithError(err).WithField("email", email).Warn("Reminder email failed")
			continue
		}
		result.Sent++
	}

	return result, nil
}
