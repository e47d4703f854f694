package services

import (
	"context"
	"fmt"

	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender delivers text messages.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// SMSService sends through Twilio. Without credentials or a from-number it
// logs and skips.
type SMSService struct {
	client    *twilio.RestClient
	fromPhone string
}

func NewSMSService(accountSID, authToken, fromPhone string) *SMSService {
	if accountSID == "" || authToken == "" || fromPhone == "" {
		return &SMSService{}
	}
	return &SMSService{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		fromPhone: fromPhone,
	}
}

func (s *SMSService) SendSMS(_ context.Context, to, body string) error {
	if s.client == nil {
		utils.Logger.Debugf("Twilio not configured, skipping SMS to %s", to)
		return nil
	}
	if !utils.IsE164(to) {
		return fmt.Errorf("%w: %q", utils.ErrInvalidPhone, to)
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.fromPhone)
	params.SetBody(body)
	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("%w: twilio: %v", utils.ErrExternalServiceFailure, err)
	}
	return nil
}
