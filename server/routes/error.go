// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"errors"
	"net/http"

	"codeberg.org/tscat/tscat/server/request_context"
)

// messageContext is the catalog context of the server's own messages.
const messageContext = "tscat-server"

// ErrNotFound answers unknown routes.
var ErrNotFound = errors.New("not found")

// HTTPError is an error with the status code to answer with.
type HTTPError struct {
	Status int
	Err    error
}

// NewHTTPError wraps err so that it is reported with status.
func NewHTTPError(status int, err error) *HTTPError {
	return &HTTPError{Status: status, Err: err}
}

func (e *HTTPError) Error() string {
	return e.Err.Error()
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// StatusOf returns the status code carried by err, or 500.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}

	return http.StatusInternalServerError
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorPage writes the request's error and status code as JSON.
// Internal errors are not echoed to the client.
func ErrorPage(w http.ResponseWriter, r *http.Request) {
	rc := request_context.FromRequest(r)
	if rc.StatusCode < http.StatusBadRequest {
		rc.StatusCode = http.StatusInternalServerError
	}

	resp := ErrorResponse{
		Status:    rc.StatusCode,
		Error:     http.StatusText(rc.StatusCode),
		RequestID: rc.RequestID,
	}

	if rc.StatusCode == http.StatusNotFound && rc.RequestError == nil {
		rc.RequestError = ErrNotFound
	}

	if rc.RequestError != nil && rc.StatusCode < http.StatusInternalServerError {
		resp.Error = rc.RequestError.Error()
	}

	w.Header().Set("Cache-Control", "no-store")

	_ = writeJSONStatus(w, rc.StatusCode, resp)
}
