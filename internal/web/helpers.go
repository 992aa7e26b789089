package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/devstefancho/claude-hook-logger/internal/eventstore"
	"github.com/devstefancho/claude-hook-logger/internal/query"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps the error sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, eventstore.ErrInvalidFilename), errors.Is(err, query.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, query.ErrUnknownTool):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// intParam parses an optional integer query parameter.
func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", query.ErrInvalidArgument, name)
	}
	return n, nil
}

// fileParam validates the optional file parameter before any handler uses it.
func fileParam(r *http.Request) (string, error) {
	file := r.URL.Query().Get("file")
	if file == "" {
		return "", nil
	}
	if err := eventstore.ValidateFilename(file); err != nil {
		return "", err
	}
	return file, nil
}
