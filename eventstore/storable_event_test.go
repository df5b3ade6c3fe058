package eventstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_BuildStorableEvent_ErrorCases(t *testing.T) {
	validTime := time.Now()
	validPayloadJSON := []byte(`{"BookID": "b-1"}`)
	validMetadataJSON := []byte(`{"MessageID": "m-1"}`)

	tests := []struct {
		name         string
		eventType    string
		payloadJSON  []byte
		metadataJSON []byte
		expectedErr  error
	}{
		{
			name:         "empty event type",
			eventType:    "",
			payloadJSON:  validPayloadJSON,
			metadataJSON: validMetadataJSON,
			expectedErr:  ErrEmptyEventType,
		},
		{
			name:         "invalid payload JSON",
			eventType:    "BookAdded",
			payloadJSON:  []byte(`{"invalid": json}`),
			metadataJSON: validMetadataJSON,
			expectedErr:  ErrInvalidPayloadJSON,
		},
		{
			name:         "invalid metadata JSON",
			eventType:    "BookAdded",
			payloadJSON:  validPayloadJSON,
			metadataJSON: []byte(`{"invalid": json}`),
			expectedErr:  ErrInvalidMetadataJSON,
		},
		{
			name:         "truncated payload JSON",
			eventType:    "BookAdded",
			payloadJSON:  []byte(`{"BookID": "b-1"`),
			metadataJSON: validMetadataJSON,
			expectedErr:  ErrInvalidPayloadJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildStorableEvent(tt.eventType, validTime, tt.payloadJSON, tt.metadataJSON)

			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func Test_BuildStorableEvent_Success(t *testing.T) {
	occurredAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	event, err := BuildStorableEvent("BookAdded", occurredAt, []byte(`{"BookID":"b-1"}`), []byte(`{}`))

	assert.NoError(t, err)
	assert.Equal(t, "BookAdded", event.EventType)
	assert.Equal(t, occurredAt, event.OccurredAt)
	assert.JSONEq(t, `{"BookID":"b-1"}`, string(event.PayloadJSON))
	assert.Equal(t, uint(0), event.SequenceNumber)
}

func Test_BuildStorableEventWithEmptyMetadata(t *testing.T) {
	event, err := BuildStorableEventWithEmptyMetadata("BookRemoved", time.Now(), []byte(`{"BookID":"b-1"}`))

	assert.NoError(t, err)
	assert.Equal(t, "{}", string(event.MetadataJSON))
	assert.Equal(t, uint(7), event.WithSequenceNumber(7).SequenceNumber)
}
