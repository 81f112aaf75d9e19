package common

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/matst80/slask-cars/pkg/common/jsoncompat"
	"github.com/matst80/slask-cars/pkg/types"
)

// HttpError carries the response status of a failed handler.
type HttpError struct {
	Status int
	Err    error
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("%d %s: %v", e.Status, http.StatusText(e.Status), e.Err)
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(status int, err error) *HttpError {
	return &HttpError{Status: status, Err: err}
}

func BadRequest(err error) error {
	return NewHttpError(http.StatusBadRequest, err)
}

type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

type JsonHandlerFunc func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error

func JsonHandler(sessions *Sessions, trk types.Tracking, fn JsonHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := sessions.HandleSessionCookie(trk, w, r)
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		w.Header().Set("Content-Type", "application/json")

		enc := jsoncompat.NewEncoder(w)
		if err := fn(w, r, sessionId, enc); err != nil {
			WriteError(w, r, err)
		}
	}
}

// WriteError logs err and answers with its status, 500 unless it is an HttpError.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		status = httpErr.Status
	}
	if status >= http.StatusInternalServerError {
		slog.Error("error handling request", "path", r.URL.Path, "status", status, "error", err)
	} else {
		slog.Warn("rejected request", "path", r.URL.Path, "status", status, "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsoncompat.NewEncoder(w).Encode(errorResponse{Error: err.Error(), Status: status})
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}
