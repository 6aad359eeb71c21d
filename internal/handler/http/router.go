package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/workpulse/attendance-backend-go/internal/config"
	"github.com/workpulse/attendance-backend-go/internal/handler/http/middleware"
	"github.com/workpulse/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	locationHandler LocationHandler,
	workLogHandler WorkLogHandler,
	messageHandler MessageHandler,
	taskHandler TaskHandler,
	kpiHandler KPIHandler,
	userHandler UserHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workpulse-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.GetMe)
				r.Get("/me/qr-token", userHandler.GetMyQRToken)
				r.Post("/me/qr-token", userHandler.RegenerateQRToken)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/scan", attendanceHandler.Scan)
				r.Get("/my", attendanceHandler.GetMyAttendance)

				// Manager or admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", attendanceHandler.List)
				})
			})

			r.Route("/locations", func(r chi.Router) {
				r.Get("/", locationHandler.List)
				r.Get("/{id}", locationHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", locationHandler.Create)
					r.Put("/{id}", locationHandler.Update)
					r.Delete("/{id}", locationHandler.Delete)
				})
			})

			r.Route("/work-logs", func(r chi.Router) {
				r.Get("/", workLogHandler.ListMy)
				r.Post("/", workLogHandler.Create)
				r.Put("/{id}", workLogHandler.Update)
			})

			r.Post("/messages/{id}/response", messageHandler.RecordResponse)
			r.Get("/message-responses", messageHandler.ListMyResponses)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Patch("/{id}/status", taskHandler.UpdateStatus)

				// Manager or admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", taskHandler.Create)
				})
			})

			r.Route("/kpi", func(r chi.Router) {
				// Self-calculation is open; calculating for another user is
				// enforced in the service.
				r.Post("/calculate", kpiHandler.Calculate)
				r.Get("/metrics", kpiHandler.ListMetrics)
				r.Get("/evaluations", kpiHandler.ListEvaluations)

				// Manager or admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/evaluations", kpiHandler.RecordEvaluation)
				})
			})
		})
	})

	return r
}
