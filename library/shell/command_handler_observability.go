package shell

import (
	"time"

	"github.com/AntonStoeckl/library-allocations/library/core"
)

const (
	// StatusSuccess indicates successful command completion.
	StatusSuccess = "success"
	// StatusError indicates command processing error.
	StatusError = "error"
	// StatusIdempotent indicates no state change was needed.
	StatusIdempotent = "idempotent"

	// LogMsgCommandCompleted is logged when command processing succeeds.
	LogMsgCommandCompleted = "command handler completed"
	// LogMsgCommandFailed is logged when command processing fails.
	LogMsgCommandFailed = "command handler failed"

	// LogAttrCommandType identifies the command type in logs.
	LogAttrCommandType = "command_type"
	// LogAttrStatus indicates the command processing status.
	LogAttrStatus = "status"
	// LogAttrDurationMS indicates the processing duration in milliseconds.
	LogAttrDurationMS = "duration_ms"
	// LogAttrRetryAttempts is the number of attempts the retry loop made.
	LogAttrRetryAttempts = "retry_attempts"
	// LogAttrLastErrorType classifies the last error of the retry loop.
	LogAttrLastErrorType = "last_error_type"
	// LogAttrError contains error details.
	LogAttrError = "error"
)

// LogCommandOutcome writes one log line for a handled command.
// Business rejections are logged at info level, infrastructure failures at error level.
func LogCommandOutcome(
	logger Logger,
	commandType string,
	result HandlerResult,
	err error,
	duration time.Duration,
) {

	if logger == nil {
		return
	}

	args := []any{
		LogAttrCommandType, commandType,
		LogAttrDurationMS, float64(duration.Nanoseconds()) / 1e6,
		LogAttrRetryAttempts, result.RetryAttempts,
		LogAttrLastErrorType, result.LastErrorType,
	}

	switch {
	case err == nil && result.Idempotent:
		logger.Info(LogMsgCommandCompleted, append(args, LogAttrStatus, StatusIdempotent)...)
	case err == nil:
		logger.Info(LogMsgCommandCompleted, append(args, LogAttrStatus, StatusSuccess)...)
	case core.IsBusinessError(err):
		logger.Info(LogMsgCommandFailed, append(args, LogAttrStatus, StatusError, LogAttrError, err.Error())...)
	default:
		logger.Error(LogMsgCommandFailed, append(args, LogAttrStatus, StatusError, LogAttrError, err.Error())...)
	}
}
