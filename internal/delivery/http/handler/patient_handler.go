package handler

import (
	"net/http"

	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/delivery/http/middleware"
	"doctor-portal/internal/usecase"
	"doctor-portal/pkg/response"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
	}
}

func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	patients, err := h.patientUsecase.ListPatients(r.Context(), doctorID, r.URL.Query().Get("doctorId"))
	if err != nil {
		writeError(w, err, "Failed to fetch patients")
		return
	}

	response.JSON(w, http.StatusOK, patients)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	patient, err := h.patientUsecase.GetPatient(r.Context(), doctorID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to fetch patient")
		return
	}

	response.JSON(w, http.StatusOK, patient)
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	var req dto.CreatePatientRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	patient, err := h.patientUsecase.CreatePatient(r.Context(), doctorID, &req)
	if err != nil {
		writeError(w, err, "Failed to create patient")
		return
	}

	response.JSON(w, http.StatusCreated, patient)
}
