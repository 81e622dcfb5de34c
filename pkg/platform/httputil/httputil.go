// Package httputil writes the response envelope shared by every endpoint:
//
//	{"data": <payload|null>, "errorMap": [{code, message, details?}], "dtoIn": <normalized input|null>}
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	dErrors "shoplist/pkg/domain-errors"
)

// maxBodyBytes caps request bodies; list payloads are tiny.
const maxBodyBytes = 64 << 10

// ErrorEntry is one element of the envelope's errorMap.
type ErrorEntry struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Envelope is the response body of every endpoint.
type Envelope struct {
	Data     any          `json:"data"`
	ErrorMap []ErrorEntry `json:"errorMap"`
	DtoIn    any          `json:"dtoIn"`
}

// WriteJSON writes a successful envelope.
func WriteJSON(w http.ResponseWriter, status int, data, dtoIn any) {
	write(w, status, Envelope{Data: data, ErrorMap: []ErrorEntry{}, DtoIn: dtoIn})
}

// WriteError maps err to its status and writes a single-entry errorMap.
// Errors without a domain code are reported as internalError and their text is not exposed.
func WriteError(w http.ResponseWriter, err error, dtoIn any) {
	entry := ErrorEntry{Code: string(dErrors.CodeInternal), Message: "Unexpected server error"}
	status := http.StatusInternalServerError

	if de, ok := dErrors.From(err); ok && de.Code != dErrors.CodeInternal {
		entry = ErrorEntry{Code: string(de.Code), Message: de.Message, Details: de.Details}
		status = dErrors.ToHTTPStatus(de.Code)
	}
	write(w, status, Envelope{ErrorMap: []ErrorEntry{entry}, DtoIn: dtoIn})
}

func write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response envelope", "error", err)
	}
}

// DecodeJSON decodes the request body into T. An empty body yields the zero value
// so required-field rules report the problem instead of the decoder.
// Unknown fields are ignored.
func DecodeJSON[T any](r *http.Request) (*T, error) {
	var req T
	if r.Body == nil {
		return &req, nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return &req, nil
		}
		return nil, dErrors.New(dErrors.CodeValidation, "request body is not valid JSON").
			WithDetails([]map[string]string{{"field": "body", "rule": "json", "message": err.Error()}})
	}
	return &req, nil
}

// Preparable is implemented by request DTOs: Normalize trims and defaults, Validate checks rules.
type Preparable interface {
	Normalize()
	Validate() error
}

// DecodeAndPrepare decodes, normalizes and validates a request body. On failure it writes
// the error envelope (echoing the normalized input as dtoIn) and returns false.
func DecodeAndPrepare[T any, PT interface {
	*T
	Preparable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req, err := DecodeJSON[T](r)
	if err != nil {
		logger.WarnContext(ctx, "failed to decode request", "request_id", requestID, "error", err)
		WriteError(w, err, nil)
		return nil, false
	}
	p := PT(req)
	p.Normalize()
	if err := p.Validate(); err != nil {
		logger.WarnContext(ctx, "invalid request", "request_id", requestID, "error", err)
		WriteError(w, err, req)
		return nil, false
	}
	return req, true
}
