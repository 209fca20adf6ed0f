package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/empatt-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/empatt-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Report     ReportHandler
	Employee   EmployeeHandler
	ServerRoom ServerRoomHandler
}

type RouterOptions struct {
	Logger             *slog.Logger
	CORSAllowedOrigins []string
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		response.SuccessWithMessage(w, "Welcome to the employee attendance API", nil)
	})

	r.Route("/api", func(r chi.Router) {
		// Kiosk endpoints
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/attendance/record", h.Attendance.Record)
		r.Get("/attendance/last", h.Attendance.Last)
		r.Post("/server-room-actions", h.ServerRoom.RecordAction)

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(middleware.AdminOnly)

			r.Post("/auth/register", h.Auth.Register)
			r.Post("/auth/logout", h.Auth.Logout)

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Get("/employee", h.Attendance.EmployeeHistory)
				r.Get("/summary", h.Report.MonthlySummary)
				r.Get("/export", h.Report.ExportMonthlySummary)
				r.Post("/reset-violations", h.Attendance.ResetViolations)
			})

			r.Route("/server-room-actions", func(r chi.Router) {
				r.Get("/", h.ServerRoom.ListActions)
				r.Get("/export", h.ServerRoom.ExportActions)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.GetEmployee)
					r.Put("/", h.Employee.UpdateEmployee)
					r.Delete("/", h.Employee.DeleteEmployee)
				})
			})
		})
	})
	return r
}
