package http

import (
	"io"
	"log/slog"

	"github.com/cmlabs-hris/homestay-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	LogLevel       slog.Level
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, shiftHandler ShiftHandler, attendanceHandler AttendanceHandler, reportHandler ReportHandler) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

		r.Route("/shifts", func(r chi.Router) {
			r.Use(middleware.RequireManager)

			r.Get("/", shiftHandler.List)
			r.Post("/", shiftHandler.Create)
			r.Get("/conflicts", shiftHandler.CheckConflicts)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", shiftHandler.Get)
				r.Patch("/", shiftHandler.Update)
				r.Delete("/", shiftHandler.Delete)
				r.Post("/complete", shiftHandler.Complete)
				r.Post("/missed", shiftHandler.MarkMissed)
				r.Post("/cancel", shiftHandler.Cancel)
			})
		})

		r.With(middleware.RequireManager).Post("/staff/{staffID}/shifts", shiftHandler.Assign)

		r.Route("/attendance", func(r chi.Router) {
			// Any authenticated staff member, acting on their own record
			r.Post("/check-in", attendanceHandler.CheckIn)
			r.Post("/check-out", attendanceHandler.CheckOut)
			r.Get("/today", attendanceHandler.Today)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/", attendanceHandler.List)
				r.Get("/{id}", attendanceHandler.Get)
				r.Patch("/{id}", attendanceHandler.Update)
			})
		})

		r.With(middleware.RequireManager).Get("/reports/attendance", reportHandler.Attendance)
	})
	return r
}

// NewLogger builds the ECS-formatted JSON logger shared by the request log and the app.
func NewLogger(w io.Writer, level slog.Level, attrs ...slog.Attr) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})
	return slog.New(handler.WithAttrs(attrs))
}
