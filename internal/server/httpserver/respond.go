package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prestoapp/presto-server/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *HTTPServer) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(ctx, "response encode error", "error", err.Error())
	}
}

// writeError maps a service error to its status code: input errors become
// 400, access errors 403, anything else a detail-free 500.
func (s *HTTPServer) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case common.IsInputError(err):
		s.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case common.IsAccessError(err):
		s.writeJSON(ctx, w, http.StatusForbidden, errorResponse{Error: err.Error()})
	default:
		s.logger.Error(ctx, "unhandled error", "error", err.Error())
		s.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "A system error occurred"})
	}
}

// decodeJSON reads the request body into v, enforcing the size cap. Any
// decode failure is reported as a malformed-payload input error.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrMalformedPayload, err)
	}

	return nil
}
