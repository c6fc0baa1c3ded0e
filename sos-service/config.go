package main

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings of the SOS service.
type Config struct {
	Env             string        // Env selects the logger profile: local, development, production.
	Port            int           // Port is the HTTP listen port.
	ShutdownTimeout time.Duration // ShutdownTimeout bounds graceful shutdown.
	Twilio          TwilioConfig
	NATS            NATSConfig
}

// TwilioConfig holds the credentials and the sender identity. Exactly one of
// PhoneNumber and MessagingServiceSID must be set.
type TwilioConfig struct {
	AccountSID          string
	AuthToken           string
	PhoneNumber         string
	MessagingServiceSID string
}

// NATSConfig describes where alert events go. An empty URL disables publishing.
type NATSConfig struct {
	URL     string
	Subject string
}

var (
	errMissingCredentials = errors.New("TWILIO_SID and TWILIO_AUTH_TOKEN are required")
	errNoSenderIdentity   = errors.New("one of TWILIO_PHONE_NUMBER or TWILIO_MESSAGING_SERVICE_SID is required")
	errBothSenderIdentity = errors.New("TWILIO_PHONE_NUMBER and TWILIO_MESSAGING_SERVICE_SID are mutually exclusive")
)

// MustLoad reads .env (if any) and the process environment.
// It panics when a numeric or duration value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	port, err := strconv.Atoi(setDefaultEnv("PORT", "3000"))
	if err != nil {
		panic("failed to parse port from configuration")
	}

	shutdownTimeout, err := time.ParseDuration(setDefaultEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		panic("failed to parse shutdown timeout from configuration")
	}

	return &Config{
		Env:             setDefaultEnv("APP_ENV", envProd),
		Port:            port,
		ShutdownTimeout: shutdownTimeout,
		Twilio: TwilioConfig{
			AccountSID:          os.Getenv("TWILIO_SID"),
			AuthToken:           os.Getenv("TWILIO_AUTH_TOKEN"),
			PhoneNumber:         os.Getenv("TWILIO_PHONE_NUMBER"),
			MessagingServiceSID: os.Getenv("TWILIO_MESSAGING_SERVICE_SID"),
		},
		NATS: NATSConfig{
			URL:     os.Getenv("NATS_URL"),
			Subject: setDefaultEnv("NATS_SUBJECT", "sos.alerts"),
		},
	}
}

// Validate reports configuration that would make every send fail.
func (c *Config) Validate() error {
	if c.Twilio.AccountSID == "" || c.Twilio.AuthToken == "" {
		return errMissingCredentials
	}
	switch {
	case c.Twilio.PhoneNumber == "" && c.Twilio.MessagingServiceSID == "":
		return errNoSenderIdentity
	case c.Twilio.PhoneNumber != "" && c.Twilio.MessagingServiceSID != "":
		return errBothSenderIdentity
	}
	return nil
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
