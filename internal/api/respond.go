package api

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/tablekit/tablekit/pkg/errors"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a structured error to its HTTP status and renders the
// error envelope. Errors without a code render as INTERNAL_ERROR with a
// generic message so internals do not leak.
func writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	code := apperrors.GetCode(err)
	msg := apperrors.UserMessage(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
		msg = "internal server error"
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: msg,
	}})
}
