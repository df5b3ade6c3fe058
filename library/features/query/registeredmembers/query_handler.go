package registeredmembers

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-allocations/library/core"
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

// Handle executes the query. A query for a single member who is not registered fails with core.ErrNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (RegisteredMembers, error) {
	start := time.Now()

	result, err := h.handle(ctx, query)
	shell.LogQueryOutcome(h.logger, query.QueryType(), result.Count, err, time.Since(start))

	return result, err
}

func (h QueryHandler) handle(ctx context.Context, query Query) (RegisteredMembers, error) {
	history, maxSequenceNumber, err := shell.ReadHistory(ctx, h.eventStore, BuildEventFilter(query))
	if err != nil {
		return RegisteredMembers{}, err
	}

	result := ProjectRegisteredMembers(history, maxSequenceNumber)

	if query.isForSingleMember() && result.Count == 0 {
		return RegisteredMembers{}, core.NotFoundError("member", query.MemberID.String())
	}

	return result, nil
}
