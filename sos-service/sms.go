package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioClient "github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Sender delivers a text message to a single recipient and returns the
// provider-assigned message identifier.
type Sender interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// ProviderError carries the provider's own description of a failed send.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string { return e.Message }
func (e *ProviderError) Unwrap() error { return e.Err }

var errEmptySID = errors.New("provider returned a message without sid")

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioSender sends SMS through the Twilio REST API, either from a fixed
// phone number or through a messaging service.
type TwilioSender struct {
	api                 messageCreator
	from                string
	messagingServiceSID string
	log                 *slog.Logger
}

func NewTwilioSender(cfg TwilioConfig, log *slog.Logger) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newTwilioSenderWithAPI(client.Api, cfg, log)
}

func newTwilioSenderWithAPI(api messageCreator, cfg TwilioConfig, log *slog.Logger) *TwilioSender {
	return &TwilioSender{
		api:                 api,
		from:                cfg.PhoneNumber,
		messagingServiceSID: cfg.MessagingServiceSID,
		log:                 log,
	}
}

func (s *TwilioSender) Send(ctx context.Context, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(body)
	if s.messagingServiceSID != "" {
		params.SetMessagingServiceSid(s.messagingServiceSID)
	} else {
		params.SetFrom(s.from)
	}

	s.log.DebugContext(ctx, "Creating Twilio message", "to", to, "messaging_service", s.messagingServiceSID != "")

	msg, err := s.api.CreateMessage(params)
	if err != nil {
		var restErr *twilioClient.TwilioRestError
		if errors.As(err, &restErr) && restErr.Message != "" {
			return "", &ProviderError{Message: restErr.Message, Err: err}
		}
		return "", &ProviderError{Message: err.Error(), Err: err}
	}
	if msg == nil || msg.Sid == nil || *msg.Sid == "" {
		return "", &ProviderError{Message: errEmptySID.Error(), Err: errEmptySID}
	}

	return *msg.Sid, nil
}

func (s *TwilioSender) Name() string {
	if s.messagingServiceSID != "" {
		return "twilio_messaging_service"
	}
	return "twilio"
}

// providerMessage extracts the text to hand back to the client for a failed send.
func providerMessage(err error) string {
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return pErr.Message
	}
	return fmt.Sprint(err)
}
