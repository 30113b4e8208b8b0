// internal/services/notify_service_test.go
package services

import "errors"

var errMailDown = errors.New("smtp unavailable")

func (s *ServiceTestSuite) TestNotifySignUp() {
	status, err := s.notify.SignUp(s.ctx, &NotifyRequest{Email: " Ada@Example.com "})
	s.Require().NoError(err)
	s.Equal(NotifyStatusCreated, status)
	s.Require().Len(s.mailer.sent, 1)
	s.Equal("notify", s.mailer.sent[0].kind)

	status, err = s.notify.SignUp(s.ctx, &NotifyRequest{Email: "ada@example.com"})
	s.Require().NoError(err)
	s.Equal(NotifyStatusAlreadyNotified, status)
	s.Len(s.mailer.sent, 1, "welcome email is sent once")

	_, err = s.notify.SignUp(s.ctx, &NotifyRequest{Email: "nope"})
	s.Error(err)
}

func (s *ServiceTestSuite) TestNotifySignUpKeepsEntryWhenMailFails() {
	s.mailer.err = errMailDown

	status, err := s.notify.SignUp(s.ctx, &NotifyRequest{Email: "ada@example.com"})
	s.Require().NoError(err)
	s.Equal(NotifyStatusCreated, status)

	exists, err := s.inviteRepo.Exists(s.ctx, "ada@example.com")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *ServiceTestSuite) TestReminderCampaignCountsFailures() {
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := s.inviteRepo.Create(s.ctx, email)
		s.Require().NoError(err)
	}
	s.mailer.fail = map[string]bool{"b@example.com": true}

	result, err := s.reminders.RunCampaign(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, result.Total)
	s.Equal(2, result.Sent)
	s.Equal(1, result.Failed)
	s.Require().Len(result.Errors, 1)
	s.Equal("b@example.com", result.Errors[0].Email)
}

func (s *ServiceTestSuite) TestReminderCampaignEmptyList() {
	result, err := s.reminders.RunCampaign(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, result.Total)
	s.Empty(result.Errors)
}
