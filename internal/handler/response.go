package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/texlane/catalog-server-go/internal/errors"
	"github.com/texlane/catalog-server-go/internal/httputil"
)

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	httputil.WriteSuccess(w, status, message, data)
}

func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}

// decodeBody parses a JSON request body into dst, mapping malformed input to
// a validation error.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.ValidationError("Invalid request body")
	}
	return nil
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput("id", "must be a positive integer")
	}
	return id, nil
}

// listPayload shapes paginated collections.
func listPayload(key string, items any, total int, p PaginationParams) map[string]any {
	return map[string]any{
		key:      items,
		"total":  total,
		"limit":  p.Limit,
		"offset": p.Offset,
	}
}
