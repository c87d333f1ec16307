package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/KirkDiggler/knight-api/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err.Error())
	}
}

// writeError maps err onto its HTTP status. Internal failures are logged and
// reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()

	resp := ErrorResponse{
		Code:    code.String(),
		Message: errors.GetRootMessage(err),
		Meta:    errors.GetMeta(err),
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error())
		resp.Message = "internal server error"
		resp.Meta = nil
	} else {
		slog.DebugContext(r.Context(), "request rejected",
			"method", r.Method,
			"path", r.URL.Path,
			"code", code.String(),
			"error", err.Error())
	}

	writeJSON(w, status, resp)
}
