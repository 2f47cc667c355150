package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/handler/http/middleware"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	env string,
	ingestHandler IngestHandler,
	reportHandler ReportHandler,
	calendarHandler CalendarHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
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

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/imports", ingestHandler.Import)
				r.Post("/punches", ingestHandler.ManualPunch)
				r.Delete("/day-records/{id}", ingestHandler.DeleteDayRecord)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/summary", reportHandler.GetSummary)
				r.Get("/summaries", reportHandler.GetAllSummaries)
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/working-days", calendarHandler.GetWorkingDays)
				r.Get("/holidays", calendarHandler.GetHolidays)
			})
		})
	})
	return r
}
