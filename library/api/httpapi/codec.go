package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-allocations/eventstore"
	"github.com/AntonStoeckl/library-allocations/library/core"
)

const (
	maxBodyBytes    = 1 << 20
	contentTypeJSON = "application/json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// errorBody is the error shape the UI expects.
type errorBody struct {
	Detail string `json:"detail"`
}

// messageBody is returned by the remove endpoints.
type messageBody struct {
	Msg string `json:"msg"`
}

// copyCount accepts a JSON number or a numeric string, the UI sends both.
type copyCount struct {
	value int
	set   bool
}

func (c *copyCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("not a whole number: %s", string(data))
	}

	c.value, c.set = n, true

	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) // the client is gone if this fails
}

func readJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return core.ValidationError("reading request body: %v", err)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return core.ValidationError("request body is empty")
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return core.ValidationError("malformed JSON body: %v", err)
	}

	return nil
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrCapacityExceeded),
		errors.Is(err, core.ErrAlreadyReturned),
		errors.Is(err, core.ErrCopiesBelowAllocated),
		errors.Is(err, core.ErrHasOpenAllocations),
		errors.Is(err, core.ErrDuplicateEmail),
		errors.Is(err, eventstore.ErrConcurrencyConflict):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (api *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if ctxErr := r.Context().Err(); ctxErr != nil && status == http.StatusInternalServerError {
		// drivers do not always wrap the context error they failed on
		status = statusFor(ctxErr)
		err = errors.Join(err, ctxErr)
	}

	detail := err.Error()

	switch status {
	case http.StatusGatewayTimeout, http.StatusServiceUnavailable:
		api.logger.Warn(logMsgRequestAborted, logAttrMethod, r.Method, logAttrPath, r.URL.Path, logAttrError, err.Error())
		detail = http.StatusText(status)
	case http.StatusInternalServerError:
		api.logger.Error(logMsgRequestFailed, logAttrMethod, r.Method, logAttrPath, r.URL.Path, logAttrError, err.Error())
		detail = http.StatusText(http.StatusInternalServerError)
	}

	writeJSON(w, status, errorBody{Detail: detail})
}
