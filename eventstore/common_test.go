package eventstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-allocations/eventstore"
)

func Test_ValidateEventsTableName(t *testing.T) {
	assert.NoError(t, eventstore.ValidateEventsTableName("events"))
	assert.NoError(t, eventstore.ValidateEventsTableName("library_events_2"))
	assert.ErrorIs(t, eventstore.ValidateEventsTableName(""), eventstore.ErrEmptyEventsTableName)
	assert.ErrorIs(t, eventstore.ValidateEventsTableName("1events"), eventstore.ErrInvalidEventsTableName)
	assert.ErrorIs(t, eventstore.ValidateEventsTableName("events; DROP TABLE x"), eventstore.ErrInvalidEventsTableName)
	assert.ErrorIs(t, eventstore.ValidateEventsTableName("public.events"), eventstore.ErrInvalidEventsTableName)
}
