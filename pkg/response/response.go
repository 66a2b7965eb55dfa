package response

import (
	"encoding/json"
	"net/http"
)

// Error kinds surfaced to clients.
const (
	KindMissingField         = "MissingField"
	KindInvalidFormat        = "InvalidFormat"
	KindEmailExists          = "EmailExists"
	KindPhoneExists          = "PhoneExists"
	KindLicenseExists        = "LicenseExists"
	KindAuthenticationFailed = "AuthenticationFailed"
	KindUnauthorized         = "Unauthorized"
	KindForbidden            = "Forbidden"
	KindNotFound             = "NotFound"
	KindTooManyAttempts      = "TooManyAttempts"
	KindBadRequest           = "BadRequest"
	KindPersistenceFailure   = "PersistenceFailure"
)

type ErrorBody struct {
	Error   string      `json:"error"`
	Kind    string      `json:"kind"`
	Field   string      `json:"field,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

type MessageBody struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Message(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, MessageBody{Message: message})
}

func Error(w http.ResponseWriter, statusCode int, kind, message string, details interface{}) {
	JSON(w, statusCode, ErrorBody{
		Error:   message,
		Kind:    kind,
		Details: details,
	})
}

// FieldError reports a validation failure on a single named field.
func FieldError(w http.ResponseWriter, kind, field, message string, details interface{}) {
	JSON(w, http.StatusBadRequest, ErrorBody{
		Error:   message,
		Kind:    kind,
		Field:   field,
		Details: details,
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Bad request"
	}
	Error(w, http.StatusBadRequest, KindBadRequest, message, nil)
}

func Conflict(w http.ResponseWriter, kind, message string) {
	Error(w, http.StatusBadRequest, kind, message, nil)
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Error(w, http.StatusUnauthorized, KindUnauthorized, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, KindNotFound, message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, http.StatusForbidden, KindForbidden, message, nil)
}

// InternalServerError reports a store or server failure. Only the short message
// reaches the client; the cause stays in the server log.
func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, KindPersistenceFailure, message, nil)
}
