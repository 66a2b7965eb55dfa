package handler

import (
	"net/http"

	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/delivery/http/middleware"
	"doctor-portal/internal/usecase"
	"doctor-portal/pkg/response"
)

// DoctorHandler serves the signed-in doctor's own profile.
type DoctorHandler struct {
	profileUsecase usecase.DoctorProfileUsecase
}

func NewDoctorHandler(profileUsecase usecase.DoctorProfileUsecase) *DoctorHandler {
	return &DoctorHandler{
		profileUsecase: profileUsecase,
	}
}

func (h *DoctorHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	doctor, err := h.profileUsecase.GetProfile(r.Context(), doctorID)
	if err != nil {
		writeError(w, err, "Failed to get profile")
		return
	}

	response.JSON(w, http.StatusOK, doctor)
}

func (h *DoctorHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	var req dto.UpdateDoctorRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	doctor, err := h.profileUsecase.UpdateSelfProfile(r.Context(), doctorID, &req)
	if err != nil {
		writeError(w, err, "Failed to update profile")
		return
	}

	response.JSON(w, http.StatusOK, doctor)
}
