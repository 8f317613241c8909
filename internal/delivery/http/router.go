package http

import (
	"net/http"

	"go-doctor-finder/internal/delivery/http/handler"
	"go-doctor-finder/internal/delivery/http/middleware"
	"go-doctor-finder/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	doctorHandler     *handler.DoctorHandler
	pageHandler       *handler.PageHandler
	metricsHandler    http.Handler
	loggingMiddleware *middleware.LoggingMiddleware
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	doctorHandler *handler.DoctorHandler,
	pageHandler *handler.PageHandler,
	metricsHandler http.Handler,
	loggingMiddleware *middleware.LoggingMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		doctorHandler:     doctorHandler,
		pageHandler:       pageHandler,
		metricsHandler:    metricsHandler,
		loggingMiddleware: loggingMiddleware,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Page
	r.router.HandleFunc("/", r.pageHandler.Home).Methods(http.MethodGet)
	r.router.HandleFunc("/search", r.pageHandler.Search).Methods(http.MethodPost)

	// Metrics
	r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Doctors
	api.HandleFunc("/doctors", r.doctorHandler.SearchDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/suggestions", r.doctorHandler.SuggestDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/refresh", r.doctorHandler.RefreshDoctors).Methods(http.MethodPost)
	api.HandleFunc("/specialties", r.doctorHandler.GetSpecialties).Methods(http.MethodGet)

	r.router.NotFoundHandler = r.loggingMiddleware.Handle(http.HandlerFunc(r.notFound))

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) notFound(w http.ResponseWriter, req *http.Request) {
	response.NotFound(w, "Route not found")
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
