package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	alertPhrase = "🚨 Emergency Alert! Help needed."
	mapsBaseURL = "https://maps.google.com/"
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{9,14}$`)

var (
	ErrInvalidFormat   = errors.New("invalid phone number format")
	ErrContactNotSet   = errors.New("emergency contact not set")
	ErrMissingLocation = errors.New("location data is required")
)

// ContactStore holds the single emergency contact of the process.
// The zero value is an empty store ready for use.
type ContactStore struct {
	mu    sync.RWMutex
	phone string
}

func NewContactStore() *ContactStore {
	return &ContactStore{}
}

// Set replaces the stored contact. A phone that does not match the
// E.164-like pattern is rejected and the previous value is kept.
func (s *ContactStore) Set(phone string) error {
	if !phonePattern.MatchString(phone) {
		return ErrInvalidFormat
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.phone = phone
	return nil
}

// Get returns the stored contact and whether one has been set.
func (s *ContactStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phone, s.phone != ""
}

// Coordinate is a latitude or longitude as sent by the client. Numbers and
// non-blank strings count as present; null, booleans, blank strings and
// composite values count as missing. Zero is a valid coordinate.
type Coordinate struct {
	value string
	set   bool
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*c = Coordinate{}
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", v, err)
		}
		c.value = strconv.FormatFloat(f, 'f', -1, 64)
		c.set = true
	case string:
		if strings.TrimSpace(v) != "" {
			c.value = v
			c.set = true
		}
	}
	return nil
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	if !c.set {
		return []byte("null"), nil
	}
	return json.Marshal(c.value)
}

func (c Coordinate) IsSet() bool   { return c.set }
func (c Coordinate) String() string { return c.value }

// Location is the transient position attached to a single SOS request.
type Location struct {
	Latitude  Coordinate `json:"latitude"`
	Longitude Coordinate `json:"longitude"`
}

func (l Location) Complete() bool {
	return l.Latitude.IsSet() && l.Longitude.IsSet()
}

// MapURL renders a Google Maps link. Each coordinate is escaped on its own
// so the separating comma stays literal.
func (l Location) MapURL() string {
	return fmt.Sprintf("%s?q=%s,%s", mapsBaseURL,
		url.QueryEscape(l.Latitude.String()), url.QueryEscape(l.Longitude.String()))
}

func buildAlertMessage(loc Location) string {
	return fmt.Sprintf("%s Location: %s", alertPhrase, loc.MapURL())
}

type SetContactRequest struct {
	Phone string `json:"phone"`
}

type SendSOSRequest struct {
	Location
}

// AlertEvent is published after each attempt to reach the SMS provider.
type AlertEvent struct {
	ID        string    `json:"id"`
	Contact   string    `json:"contact"`
	Latitude  string    `json:"latitude"`
	Longitude string    `json:"longitude"`
	Status    string    `json:"status"`
	SID       string    `json:"sid,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
