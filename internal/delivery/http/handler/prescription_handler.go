package handler

import (
	"net/http"

	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/delivery/http/middleware"
	"doctor-portal/internal/usecase"
	"doctor-portal/pkg/response"

	"github.com/gorilla/mux"
)

type PrescriptionHandler struct {
	prescriptionUsecase usecase.PrescriptionUsecase
}

func NewPrescriptionHandler(prescriptionUsecase usecase.PrescriptionUsecase) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUsecase: prescriptionUsecase,
	}
}

func (h *PrescriptionHandler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	var req dto.CreatePrescriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	prescription, err := h.prescriptionUsecase.CreatePrescription(r.Context(), doctorID, &req)
	if err != nil {
		writeError(w, err, "Failed to create prescription")
		return
	}

	response.JSON(w, http.StatusCreated, dto.CreatePrescriptionResponse{
		Message:      "Prescription created successfully",
		Prescription: prescription,
	})
}

// ListPrescriptions returns a patient's prescriptions, newest first.
func (h *PrescriptionHandler) ListPrescriptions(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	prescriptions, err := h.prescriptionUsecase.ListPrescriptions(r.Context(), doctorID, mux.Vars(r)["patientId"])
	if err != nil {
		writeError(w, err, "Failed to fetch prescriptions")
		return
	}

	response.JSON(w, http.StatusOK, prescriptions)
}
