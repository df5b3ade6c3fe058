package allocationhistory

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-allocations/library/shell"
)

// QueryHandler orchestrates the complete query processing workflow: Query -> Unmarshal -> Project.
type QueryHandler struct {
	eventStore shell.QueriesEvents
	logger     shell.Logger
}

// Option defines a functional option for configuring QueryHandler.
type Option func(*QueryHandler)

// WithLogger sets the logger for the QueryHandler.
func WithLogger(logger shell.Logger) Option {
	return func(h *QueryHandler) {
		h.logger = logger
	}
}

// NewQueryHandler creates a new QueryHandler with the provided EventStore dependency and options.
func NewQueryHandler(eventStore shell.QueriesEvents, opts ...Option) QueryHandler {
	h := QueryHandler{
		eventStore: eventStore,
	}

	for _, opt := range opts {
		opt(&h)
	}

	return h
}

// Handle executes the query.
func (h QueryHandler) Handle(ctx context.Context, query Query) (AllocationHistory, error) {
	start := time.Now()

	history, maxSequenceNumber, err := shell.ReadHistory(ctx, h.eventStore, BuildEventFilter())
	if err != nil {
		shell.LogQueryOutcome(h.logger, query.QueryType(), 0, err, time.Since(start))

		return AllocationHistory{}, err
	}

	result := ProjectAllocationHistory(history, query, maxSequenceNumber)
	shell.LogQueryOutcome(h.logger, query.QueryType(), result.Count, nil, time.Since(start))

	return result, nil
}
