package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"doctor-portal/internal/usecase"
	"doctor-portal/pkg/response"
	"doctor-portal/pkg/validator"
)

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeError maps usecase errors onto the error body. Anything unrecognised
// is reported as a persistence failure with the fallback message.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		response.FieldError(w, verr.Kind, verr.Field, verr.Message, verr.Fields)
		return
	}

	switch {
	case errors.Is(err, usecase.ErrEmailExists):
		response.Conflict(w, response.KindEmailExists, err.Error())
	case errors.Is(err, usecase.ErrPhoneExists):
		response.Conflict(w, response.KindPhoneExists, err.Error())
	case errors.Is(err, usecase.ErrLicenseExists):
		response.Conflict(w, response.KindLicenseExists, err.Error())
	case errors.Is(err, usecase.ErrAuthenticationFailed):
		response.Error(w, http.StatusUnauthorized, response.KindAuthenticationFailed, err.Error(), nil)
	case errors.Is(err, usecase.ErrTooManyAttempts):
		response.Error(w, http.StatusTooManyRequests, response.KindTooManyAttempts, err.Error(), nil)
	case errors.Is(err, usecase.ErrInvalidOldPassword):
		response.FieldError(w, response.KindInvalidFormat, "oldPassword", err.Error(), nil)
	case errors.Is(err, usecase.ErrDoctorNotFound),
		errors.Is(err, usecase.ErrPatientNotFound),
		errors.Is(err, usecase.ErrPrescriptionsNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
