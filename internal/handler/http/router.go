package http

import (
	"log/slog"
	"os"

	"github.com/campuseats/payroll-backend-go/internal/handler/http/middleware"
	"github.com/campuseats/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	env string,
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/", attendanceHandler.Log)
				r.Post("/bulk", attendanceHandler.LogBulk)
				r.Get("/staff/{staffId}", attendanceHandler.GetByStaff)
				r.Get("/canteen/{canteenId}", attendanceHandler.GetByCanteen)
				r.Get("/canteen/{canteenId}/date/{date}", attendanceHandler.GetByCanteenAndDate)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/generate", payrollHandler.Generate)
				r.Get("/{id}", payrollHandler.GetByID)
				r.Put("/{id}/submit", payrollHandler.Submit)
				r.Get("/canteen/{canteenId}", payrollHandler.ListByCanteen)
				r.Get("/", payrollHandler.ListByStatus)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/config", payrollHandler.GetConfig)
					r.Put("/config", payrollHandler.UpdateConfig)
					r.Put("/{id}/approve", payrollHandler.Approve)
					r.Put("/{id}/reject", payrollHandler.Reject)
					r.Get("/pending", payrollHandler.ListPending)
					r.Get("/pending/count", payrollHandler.CountPending)
				})
			})
		})
	})
	return r
}
