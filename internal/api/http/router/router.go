package router

import (
	"net/http"

	"github.com/jobsift/jobsift-server/internal/api/http/handler"
	"github.com/jobsift/jobsift-server/internal/api/http/middleware"
	"github.com/jobsift/jobsift-server/internal/logger"
	"github.com/jobsift/jobsift-server/internal/model"
)

// Services bundles the business services exposed over HTTP.
type Services struct {
	Interviews handler.InterviewService
	Calendar   handler.CalendarService
	Feed       handler.FeedService
	Dashboard  handler.DashboardService
	Health     handler.Pinger
}

// Router wires handlers and middleware onto a ServeMux.
type Router struct {
	services       Services
	defaults       handler.CalendarDefaults
	tokens         middleware.TokenParser
	users          model.UserStore
	contextManager model.ContextManager
	logger         *logger.Logger
}

func New(
	services Services,
	defaults handler.CalendarDefaults,
	tokens middleware.TokenParser,
	users model.UserStore,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		defaults:       defaults,
		tokens:         tokens,
		users:          users,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the HTTP handler. Every route except the health checks
// requires a bearer token.
func (r *Router) Register() http.Handler {
	mux := http.NewServeMux()
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokens, r.users, r.contextManager, r.logger)

	r.registerHealthRoutes(mux)
	r.registerInterviewRoutes(mux, authenticate)
	r.registerCalendarRoutes(mux, authenticate)
	r.registerDashboardRoutes(mux, authenticate)

	return logging.Handle(mux)
}

func (r *Router) registerHealthRoutes(mux *http.ServeMux) {
	h := handler.NewHealth(r.services.Health, r.logger)
	mux.HandleFunc("GET /health", h.Check)
	mux.HandleFunc("GET /calendar/health", h.Calendar)
}

func (r *Router) registerInterviewRoutes(mux *http.ServeMux, auth *middleware.Authenticate) {
	h := handler.NewInterview(r.services.Interviews, r.contextManager, r.logger)
	c := handler.NewCalendar(r.services.Calendar, r.services.Feed, r.defaults, r.contextManager, r.logger)

	protect(mux, auth, "GET /interviews/metadata", h.Metadata)
	protect(mux, auth, "GET /interviews/stats", h.Stats)
	protect(mux, auth, "GET /interviews", h.List)
	protect(mux, auth, "POST /interviews", h.Create)
	protect(mux, auth, "GET /interviews/{id}", h.Get)
	protect(mux, auth, "PUT /interviews/{id}", h.Update)
	protect(mux, auth, "DELETE /interviews/{id}", h.Delete)
	protect(mux, auth, "GET /interviews/{id}/events", c.InterviewEvents)
}

func (r *Router) registerCalendarRoutes(mux *http.ServeMux, auth *middleware.Authenticate) {
	h := handler.NewCalendar(r.services.Calendar, r.services.Feed, r.defaults, r.contextManager, r.logger)

	protect(mux, auth, "POST /calendar/events", h.CreateEvent)
	protect(mux, auth, "GET /calendar/events", h.UpcomingEvents)
	protect(mux, auth, "DELETE /calendar/events/{id}", h.DeleteEvent)
	protect(mux, auth, "POST /calendar/{provider}/sync", h.Sync)
	protect(mux, auth, "GET /calendar/ics", h.ExportICS)
	protect(mux, auth, "POST /calendar/ics/publish", h.PublishICS)
	protect(mux, auth, "GET /calendar/ics/published", h.PublishedICS)
	protect(mux, auth, "DELETE /calendar/ics/published", h.UnpublishICS)
	protect(mux, auth, "GET /calendar/integration-status", h.IntegrationStatus)
	protect(mux, auth, "GET /calendar/feeds", h.Feeds)
}

func (r *Router) registerDashboardRoutes(mux *http.ServeMux, auth *middleware.Authenticate) {
	h := handler.NewDashboard(r.services.Dashboard, r.contextManager, r.logger)
	protect(mux, auth, "GET /dashboard/summary", h.Summary)
}

func protect(mux *http.ServeMux, auth *middleware.Authenticate, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, auth.Handle(h))
}
