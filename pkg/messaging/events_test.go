package messaging_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kycflow/kycflow-backend/pkg/messaging"
)

func TestGenerateEventID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := messaging.GenerateEventID()
		require.False(t, seen[id], "event IDs must not collide")
		seen[id] = true

		_, err := uuid.Parse(id)
		require.NoError(t, err, "event IDs are UUIDs")
	}
}

func TestNewEvent(t *testing.T) {
	event, err := messaging.NewEvent(messaging.EventKYCVerified, "kyc-service", "corr-1",
		messaging.KYCVerifiedEvent{UserID: "u1", MatchScore: 93})
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, messaging.EventKYCVerified, event.Type)
	assert.Equal(t, "kyc-service", event.Source)
	assert.Equal(t, "corr-1", event.CorrelationID)
	assert.False(t, event.Timestamp.IsZero())

	var data messaging.KYCVerifiedEvent
	require.NoError(t, event.UnmarshalData(&data))
	assert.Equal(t, "u1", data.UserID)
	assert.Equal(t, 93, data.MatchScore)
}
