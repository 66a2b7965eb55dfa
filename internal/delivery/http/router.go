package http

import (
	"net/http"

	"doctor-portal/internal/delivery/http/handler"
	"doctor-portal/internal/delivery/http/middleware"
	"doctor-portal/pkg/monitoring"
	"doctor-portal/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router              *mux.Router
	log                 *logrus.Logger
	authHandler         *handler.AuthHandler
	doctorHandler       *handler.DoctorHandler
	patientHandler      *handler.PatientHandler
	prescriptionHandler *handler.PrescriptionHandler
	suggestionHandler   *handler.SuggestionHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	metrics             *monitoring.MetricsCollector
}

func NewRouter(
	log *logrus.Logger,
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	suggestionHandler *handler.SuggestionHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	metrics *monitoring.MetricsCollector,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		log:                 log,
		authHandler:         authHandler,
		doctorHandler:       doctorHandler,
		patientHandler:      patientHandler,
		prescriptionHandler: prescriptionHandler,
		suggestionHandler:   suggestionHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		metrics:             metrics,
	}
}

// Setup registers every route. CORS wraps the whole router so preflight
// requests are answered before route matching.
func (r *Router) Setup() http.Handler {
	r.router.Use(middleware.RequestLogger(r.log))
	r.router.Use(r.metrics.HTTPMiddleware)

	api := r.router.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	api.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)
	api.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Session routes (protected)
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/session", r.authHandler.Session).Methods(http.MethodGet)
	protected.HandleFunc("/me", r.doctorHandler.GetMe).Methods(http.MethodGet)
	protected.HandleFunc("/me", r.doctorHandler.UpdateMe).Methods(http.MethodPut)

	// Patient records
	protected.HandleFunc("/patients", r.patientHandler.ListPatients).Methods(http.MethodGet)
	protected.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	protected.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	protected.HandleFunc("/prescriptions", r.prescriptionHandler.CreatePrescription).Methods(http.MethodPost)
	protected.HandleFunc("/prescriptions/{patientId}", r.prescriptionHandler.ListPrescriptions).Methods(http.MethodGet)
	protected.HandleFunc("/ai-suggest", r.suggestionHandler.Suggest).Methods(http.MethodPost)

	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
