package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tempohq/tempo-backend-go/internal/config"
	"github.com/tempohq/tempo-backend-go/internal/domain/user"
	"github.com/tempohq/tempo-backend-go/internal/handler/http/middleware"
	"github.com/tempohq/tempo-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	entryHandler TimeEntryHandler,
	summaryHandler SummaryHandler,
	targetHandler TargetHandler,
	captureHandler CaptureHandler,
	userHandler UserHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "tempo-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
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

	r.Handle("/metrics", promhttp.Handler())

	// Stored time card photos, served as static files
	if cfg.Storage.Type == "local" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.BasePath)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Everything requires authentication; tokens come from the
		// external identity service
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/time-entries", func(r chi.Router) {
				r.Post("/", entryHandler.RecordPunch)
				r.Get("/open", entryHandler.ListOpen)
				r.Get("/month", entryHandler.ListMonth)
				r.Get("/day/{date}", entryHandler.ListDay)
				r.Put("/{id}", entryHandler.Update)
				r.Delete("/{id}", entryHandler.Delete)
			})

			r.Route("/capture", func(r chi.Router) {
				r.Post("/upload", captureHandler.Upload)
				r.Post("/confirm", captureHandler.Confirm)
			})

			r.Route("/summary", func(r chi.Router) {
				r.Get("/daily/{date}", summaryHandler.Daily)
				r.Get("/monthly", summaryHandler.Monthly)
			})

			r.Route("/targets", func(r chi.Router) {
				r.Post("/", targetHandler.Create)
				r.Get("/", targetHandler.List)
				r.Get("/progress", targetHandler.Progress)
				r.Get("/progress/current", targetHandler.CurrentProgress)
				r.Put("/{id}", targetHandler.Update)
				r.Delete("/{id}", targetHandler.Delete)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.Me)
				r.Put("/me", userHandler.UpdateProfile)
			})

			r.Route("/permissions", func(r chi.Router) {
				r.Get("/me", userHandler.MyPermissions)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionViewAllUsers))
					r.Get("/users/{id}", userHandler.UserPermissions)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionManageUserRoles))
					r.Get("/roles", userHandler.Roles)
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionViewAllTimeEntries))
					r.Get("/time-entries", entryHandler.ListAll)
					r.Get("/summary", summaryHandler.AllUsersOverview)
					r.Get("/users/{id}/time-entries", entryHandler.ListByUser)
					r.Get("/users/{id}/summary", summaryHandler.UserOverview)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionViewAllUsers))
					r.Get("/users", userHandler.List)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionManageUserRoles))
					r.Put("/users/{id}/role", userHandler.UpdateRole)
				})
			})
		})
	})

	return r
}
