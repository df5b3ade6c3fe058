package editbook

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-allocations/library/shell"
)

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
// It handles the core event sourcing workflow: Query -> Unmarshal -> Decide -> Append.
type CommandHandler struct {
	eventStore   shell.EventStore
	retryOptions []shell.RetryOption
	logger       shell.Logger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithLogger makes the handler log one line per handled command.
func WithLogger(logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(eventStore shell.EventStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		eventStore: eventStore,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
// Returns HandlerResult containing business outcomes and execution metadata.
//
// Resilience: Implements exponential backoff retry logic for concurrency conflicts.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	start := time.Now()

	var isIdempotent bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := h.executeCommand(retryCtx, command)
		isIdempotent = idempotent

		return execErr
	}, h.retryOptions...)

	var result shell.HandlerResult

	switch {
	case err != nil:
		result = shell.NewErrorResult(retryMetrics)
	case isIdempotent:
		result = shell.NewIdempotentResult(retryMetrics)
	default:
		result = shell.NewSuccessResult(retryMetrics)
	}

	shell.LogCommandOutcome(h.logger, command.CommandType(), result, err, time.Since(start))

	return result, err
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	filter := BuildEventFilter(command.BookID)

	// Query phase
	history, maxSequenceNumber, err := shell.ReadHistory(ctx, h.eventStore, filter)
	if err != nil {
		return false, err
	}

	// Business logic phase - delegate to pure core function
	result := Decide(history, command)

	// Append phase - conditional on the stream being unchanged since the query
	return shell.ApplyDecision(ctx, h.eventStore, filter, maxSequenceNumber, result)
}
