package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioClient "github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeMessageCreator struct {
	params *twilioApi.CreateMessageParams
	resp   *twilioApi.ApiV2010Message
	err    error
}

func (f *fakeMessageCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = params
	return f.resp, f.err
}

func sidResponse(sid string) *twilioApi.ApiV2010Message {
	return &twilioApi.ApiV2010Message{Sid: &sid}
}

func TestTwilioSender_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("sends from phone number", func(t *testing.T) {
		api := &fakeMessageCreator{resp: sidResponse("SM100")}
		sender := newTwilioSenderWithAPI(api, TwilioConfig{PhoneNumber: "+15550001111"}, discardLogger())

		sid, err := sender.Send(ctx, "+15551234567", "help")

		require.NoError(t, err)
		assert.Equal(t, "SM100", sid)
		require.NotNil(t, api.params.From)
		assert.Equal(t, "+15550001111", *api.params.From)
		assert.Nil(t, api.params.MessagingServiceSid)
		assert.Equal(t, "+15551234567", *api.params.To)
		assert.Equal(t, "help", *api.params.Body)
		assert.Equal(t, "twilio", sender.Name())
	})

	t.Run("sends through messaging service", func(t *testing.T) {
		api := &fakeMessageCreator{resp: sidResponse("SM200")}
		sender := newTwilioSenderWithAPI(api, TwilioConfig{MessagingServiceSID: "MG123"}, discardLogger())

		sid, err := sender.Send(ctx, "+15551234567", "help")

		require.NoError(t, err)
		assert.Equal(t, "SM200", sid)
		require.NotNil(t, api.params.MessagingServiceSid)
		assert.Equal(t, "MG123", *api.params.MessagingServiceSid)
		assert.Nil(t, api.params.From)
		assert.Equal(t, "twilio_messaging_service", sender.Name())
	})

	t.Run("rest error message is passed through", func(t *testing.T) {
		restErr := &twilioClient.TwilioRestError{
			Code:    21211,
			Message: "Invalid 'To' Phone Number: +1555",
			Status:  400,
		}
		api := &fakeMessageCreator{err: restErr}
		sender := newTwilioSenderWithAPI(api, TwilioConfig{PhoneNumber: "+15550001111"}, discardLogger())

		sid, err := sender.Send(ctx, "+1555", "help")

		require.Error(t, err)
		assert.Empty(t, sid)
		assert.Equal(t, "Invalid 'To' Phone Number: +1555", err.Error())
		assert.Equal(t, "Invalid 'To' Phone Number: +1555", providerMessage(err))

		var got *twilioClient.TwilioRestError
		require.ErrorAs(t, err, &got)
		assert.Equal(t, 21211, got.Code)
	})

	t.Run("transport error is wrapped", func(t *testing.T) {
		api := &fakeMessageCreator{err: assert.AnError}
		sender := newTwilioSenderWithAPI(api, TwilioConfig{PhoneNumber: "+15550001111"}, discardLogger())

		_, err := sender.Send(ctx, "+15551234567", "help")

		require.ErrorIs(t, err, assert.AnError)
		var pErr *ProviderError
		require.ErrorAs(t, err, &pErr)
		assert.Equal(t, assert.AnError.Error(), pErr.Message)
	})

	t.Run("missing sid is an error", func(t *testing.T) {
		api := &fakeMessageCreator{resp: &twilioApi.ApiV2010Message{}}
		sender := newTwilioSenderWithAPI(api, TwilioConfig{PhoneNumber: "+15550001111"}, discardLogger())

		_, err := sender.Send(ctx, "+15551234567", "help")

		require.ErrorIs(t, err, errEmptySID)
	})
}

func TestProviderMessage(t *testing.T) {
	assert.Equal(t, "boom", providerMessage(errors.New("boom")))
	assert.Equal(t, "denied", providerMessage(&ProviderError{Message: "denied"}))
}
