package services

import (
	"context"
	"fmt"

	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers transactional email.
type Mailer interface {
	SendEmail(ctx context.Context, toName, toEmail, subject, plainText, html string) error
}

// EmailService sends through SendGrid. A nil client logs and skips.
type EmailService struct {
	client    *sendgrid.Client
	orgName   string
	fromEmail string
	sandbox   bool
}

func NewEmailService(apiKey, orgName, fromEmail string, sandbox bool) *EmailService {
	var c *sendgrid.Client
	if apiKey != "" {
		c = sendgrid.NewSendClient(apiKey)
	}
	return &EmailService{client: c, orgName: orgName, fromEmail: fromEmail, sandbox: sandbox}
}

func (s *EmailService) SendEmail(_ context.Context, toName, toEmail, subject, plainText, html string) error {
	if s.client == nil {
		utils.Logger.Warnf("SendGrid client is nil, skipping email to %s", toEmail)
		return nil
	}
	from := mail.NewEmail(s.orgName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	msg := mail.NewSingleEmail(from, subject, to, plainText, html)
	msg.TrackingSettings = &mail.TrackingSettings{
		ClickTracking: &mail.ClickTrackingSetting{
			Enable: utils.Ptr(false),
		},
	}
	if s.sandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.MailSettings = ms
	}

	resp, err := s.client.Send(msg)
	if err != nil {
		return fmt.Errorf("%w: sendgrid: %v", utils.ErrExternalServiceFailure, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: sendgrid status %d: %s", utils.ErrExternalServiceFailure, resp.StatusCode, resp.Body)
	}
	return nil
}
