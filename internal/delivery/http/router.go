package http

import (
	"net/http"

	"hospital-management/internal/delivery/http/handler"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/domain/entity"
	"hospital-management/pkg/metrics"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router             *mux.Router
	log                *logrus.Logger
	metrics            *metrics.Collector
	authHandler        *handler.AuthHandler
	patientHandler     *handler.PatientHandler
	doctorHandler      *handler.DoctorHandler
	appointmentHandler *handler.AppointmentHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	csrfMiddleware     mux.MiddlewareFunc
}

// NewRouter wires the handlers. csrfMiddleware may be nil to serve without CSRF checks.
func NewRouter(
	log *logrus.Logger,
	collector *metrics.Collector,
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	csrfMiddleware mux.MiddlewareFunc,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		log:                log,
		metrics:            collector,
		authHandler:        authHandler,
		patientHandler:     patientHandler,
		doctorHandler:      doctorHandler,
		appointmentHandler: appointmentHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		csrfMiddleware:     csrfMiddleware,
	}
}

func (r *Router) Setup() http.Handler {
	r.router.Use(middleware.RequestLogger(r.log, r.metrics))
	if r.csrfMiddleware != nil {
		r.router.Use(r.csrfMiddleware)
	}

	// Operational endpoints
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	r.router.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)

	// Public pages
	r.router.HandleFunc("/", r.authHandler.LoginPage).Methods(http.MethodGet)
	r.router.Handle("/access", r.authMiddleware.LoadSession(http.HandlerFunc(r.authHandler.AccessPortal))).Methods(http.MethodGet)
	r.router.HandleFunc("/register", r.authHandler.RegisterPage).Methods(http.MethodGet)
	r.router.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	r.router.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Session required
	r.handle("/logout", r.authHandler.Logout, "", http.MethodPost)
	r.handle("/dashboard", r.authHandler.Dashboard, "", http.MethodGet)

	// Patients
	r.handle("/add_patient", r.patientHandler.AddPatient, entity.CapCreatePatient, http.MethodPost)
	r.handle("/patients", r.patientHandler.ListPatients, entity.CapViewPatients, http.MethodGet)

	// Doctors (admin)
	r.handle("/add_doctor", r.doctorHandler.AddDoctorPage, entity.CapCreateDoctor, http.MethodGet)
	r.handle("/add_doctor", r.doctorHandler.AddDoctor, entity.CapCreateDoctor, http.MethodPost)

	// Appointments
	r.handle("/book_appointment", r.appointmentHandler.BookAppointmentPage, entity.CapBookAppointment, http.MethodGet)
	r.handle("/book_appointment", r.appointmentHandler.BookAppointment, entity.CapBookAppointment, http.MethodPost)
	r.handle("/appointments", r.appointmentHandler.ListAppointments, entity.CapViewAppointments, http.MethodGet)

	// Audit trail (admin)
	r.handle("/audit_logs", r.auditLogHandler.GetAllAuditLogs, entity.CapViewAuditLogs, http.MethodGet)

	var h http.Handler = r.router
	h = handlers.ProxyHeaders(h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(r.log), handlers.PrintRecoveryStack(true))(h)
	return h
}

// handle registers a route behind the session check and, when capability is set, the capability gate
func (r *Router) handle(path string, fn http.HandlerFunc, capability entity.Capability, method string) {
	var h http.Handler = fn
	if capability != "" {
		h = middleware.RequireCapability(capability)(h)
	}
	h = r.authMiddleware.RequireSession(h)
	r.router.Handle(path, h).Methods(method)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
