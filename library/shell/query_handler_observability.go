package shell

import (
	"time"

	"github.com/AntonStoeckl/library-allocations/library/core"
)

const (
	// LogMsgQueryCompleted is logged when query processing succeeds.
	LogMsgQueryCompleted = "query handler completed"
	// LogMsgQueryFailed is logged when query processing fails.
	LogMsgQueryFailed = "query handler failed"

	// LogAttrQueryType identifies the query type in logs.
	LogAttrQueryType = "query_type"
	// LogAttrResultCount is the number of entries in the projection.
	LogAttrResultCount = "result_count"
)

// LogQueryOutcome writes one log line for a handled query.
// Success is logged at debug level, a missing entity at info level, any other failure at error level.
func LogQueryOutcome(logger Logger, queryType string, resultCount int, err error, duration time.Duration) {
	if logger == nil {
		return
	}

	args := []any{
		LogAttrQueryType, queryType,
		LogAttrDurationMS, float64(duration.Nanoseconds()) / 1e6,
	}

	switch {
	case err == nil:
		logger.Debug(LogMsgQueryCompleted, append(args, LogAttrResultCount, resultCount)...)
	case core.IsBusinessError(err):
		logger.Info(LogMsgQueryFailed, append(args, LogAttrError, err.Error())...)
	default:
		logger.Error(LogMsgQueryFailed, append(args, LogAttrError, err.Error())...)
	}
}
