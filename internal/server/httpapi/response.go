package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/irabeny89/ebbs2022-sub000/internal/common"
)

// envelope is the uniform response shape: exactly one of data or error is
// set. Clients key off the error code, never off the HTTP status alone.
type envelope struct {
	Data  any        `json:"data,omitempty"`
	Error *wireError `json:"error,omitempty"`
}

type wireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Data: data})
}

// writeError maps the error's kind to a status and wire code. Unclassified
// errors reach the client only as the generic internal message; the handler
// has already logged the detail.
func writeError(w http.ResponseWriter, err error) {
	var status int
	var code string
	message := err.Error()

	switch common.KindOf(err) {
	case common.KindAuthentication:
		status, code = http.StatusUnauthorized, common.CodeUnauthenticated
	case common.KindForbidden:
		status, code = http.StatusForbidden, common.CodeForbidden
	case common.KindValidation:
		status, code = http.StatusBadRequest, common.CodeBadUserInput
	default:
		status, code = http.StatusInternalServerError, common.CodeInternal
		message = common.MsgSomethingWentWrong
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: &wireError{Code: code, Message: message}})
}
