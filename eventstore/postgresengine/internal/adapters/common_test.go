package adapters

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func Test_Classify(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		isSerialFail bool
	}{
		{name: "pgx serialization failure", err: &pgconn.PgError{Code: "40001"}, isSerialFail: true},
		{name: "pgx deadlock", err: &pgconn.PgError{Code: "40P01"}, isSerialFail: true},
		{name: "pgx unique violation", err: &pgconn.PgError{Code: "23505"}, isSerialFail: false},
		{name: "pq serialization failure", err: &pq.Error{Code: "40001"}, isSerialFail: true},
		{name: "pq syntax error", err: &pq.Error{Code: "42601"}, isSerialFail: false},
		{name: "plain error", err: errors.New("connection reset"), isSerialFail: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.err)

			assert.Equal(t, tt.isSerialFail, errors.Is(err, ErrSerializationFailure))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
