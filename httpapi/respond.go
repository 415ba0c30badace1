package httpapi

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/readhall/circulation-go/core"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps the error taxonomy onto HTTP status codes. Unclassified
// errors are persistence failures and must not leak their message.
func writeError(w http.ResponseWriter, err error) {
	switch core.KindOf(err) {
	case core.KindNotFound:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case core.KindUnauthorized:
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case core.KindRuleViolation:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case core.KindConflict:
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
