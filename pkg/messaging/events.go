package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventUserRegistered = "kyc.user.registered"
	EventKYCVerified    = "kyc.verified"
	EventKYCApproved    = "kyc.approved"
	EventKYCRejected    = "kyc.rejected"
)

// Exchange names
const (
	ExchangeKYCEvents = "kyc.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// UserRegisteredEvent is published when a user signs up
type UserRegisteredEvent struct {
	UserID      string `json:"user_id"`
	PhoneNumber string `json:"phone_number"`
	FullName    string `json:"full_name"`
}

// KYCVerifiedEvent is published when automated verification succeeds
type KYCVerifiedEvent struct {
	UserID     string `json:"user_id"`
	MatchScore int    `json:"match_score"`
	PhotoKey   string `json:"photo_key,omitempty"`
}

// KYCApprovedEvent is published when an administrator approves a user
type KYCApprovedEvent struct {
	UserID string `json:"user_id"`
}

// KYCRejectedEvent is published when an administrator rejects a user
type KYCRejectedEvent struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return uuid.New().String()
}
