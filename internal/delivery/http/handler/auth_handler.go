package handler

import (
	"net/http"

	"doctor-portal/config"
	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/delivery/http/middleware"
	"doctor-portal/internal/usecase"
	"doctor-portal/pkg/monitoring"
	"doctor-portal/pkg/response"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	session     config.SessionConfig
	metrics     *monitoring.MetricsCollector
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, session config.SessionConfig, metrics *monitoring.MetricsCollector) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		session:     session,
		metrics:     metrics,
	}
}

// Register handles doctor registration
// @Summary Register a new doctor
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterDoctorRequest true "Register Request"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterDoctorRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	res, err := h.authUsecase.Register(r.Context(), &req)
	if err != nil {
		h.recordAttempt("register", "failure")
		writeError(w, err, "Failed to register doctor")
		return
	}

	h.recordAttempt("register", "success")
	response.JSON(w, http.StatusCreated, res)
}

// Login handles doctor login
// @Summary Login doctor
// @Description Verifies credentials and sets the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} response.ErrorBody
// @Failure 429 {object} response.ErrorBody
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	doctor, token, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		h.recordAttempt("login", "failure")
		writeError(w, err, "Failed to login")
		return
	}

	h.recordAttempt("login", "success")
	middleware.SetSessionCookie(w, h.session, token.Value, token.ExpiresAt)
	response.JSON(w, http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		Doctor:  doctor,
	})
}

// Logout handles doctor logout
// @Summary Logout doctor
// @Tags Auth
// @Produce json
// @Success 200 {object} response.MessageBody
// @Failure 401 {object} response.ErrorBody
// @Router /logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	if err := h.authUsecase.Logout(r.Context(), doctorID); err != nil {
		writeError(w, err, "Failed to logout")
		return
	}

	middleware.ClearSessionCookie(w, h.session)
	response.Message(w, http.StatusOK, "Logout successful")
}

// Session reports the identity carried by the current session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	info := &dto.SessionInfo{
		DoctorID:   claims.DoctorID,
		DoctorCode: claims.DoctorCode,
		Name:       claims.Name,
		Email:      claims.Email,
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}

	response.JSON(w, http.StatusOK, dto.SessionResponse{
		Message: "Session is valid",
		Session: info,
	})
}

func (h *AuthHandler) recordAttempt(method, status string) {
	if h.metrics != nil {
		h.metrics.RecordAuthAttempt(method, status)
	}
}
