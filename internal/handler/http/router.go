package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/udev-hq/intern-portal-backend/internal/domain/auth"
	"github.com/udev-hq/intern-portal-backend/internal/handler/http/middleware"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/jwt"
)

type RouterConfig struct {
	Env            string
	FrontendURL    string
	UploadsDir     string
	UploadsBaseURL string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authService auth.AuthService,
	authHandler AuthHandler,
	userHandler UserHandler,
	taskHandler TaskHandler,
	leaveHandler LeaveHandler,
	attendanceHandler AttendanceHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "intern-portal"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
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

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	// Uploaded files (avatars, documents, submissions)
	fileServer(r, cfg.UploadsBaseURL, http.Dir(cfg.UploadsDir))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(authService))

			r.Route("/auth/profile", func(r chi.Router) {
				r.Get("/", authHandler.GetProfile)
				r.Put("/", authHandler.UpdateProfile)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.Get("/team-leads", userHandler.ListTeamLeads)
				r.Get("/internees", userHandler.ListInternees)
				r.Get("/dashboard", userHandler.DashboardStats)
				r.Get("/{id}", userHandler.Get)
				r.Put("/{id}", userHandler.Update)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/register", userHandler.Register)
					r.Patch("/{id}/status", userHandler.UpdateStatus)
					r.Patch("/{id}/role", userHandler.UpdateRole)
					r.Delete("/{id}", userHandler.Delete)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Get("/my-tasks", taskHandler.ListMine)
				r.Get("/{id}", taskHandler.Get)
				r.Post("/{id}/submit", taskHandler.Submit)

				// Admin and team leads
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireReviewer)
					r.Post("/", taskHandler.Create)
					r.Post("/{id}/accept", taskHandler.Accept)
					r.Post("/{id}/reject", taskHandler.Reject)
					r.Patch("/{id}/status", taskHandler.OverrideStatus)
				})

				// Admin only
				r.With(middleware.RequireAdmin).Delete("/{id}", taskHandler.Delete)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Create)
				r.Get("/", leaveHandler.List)
				r.Get("/my-leaves", leaveHandler.ListMine)
				r.Get("/user/{userId}", leaveHandler.ListByUser)
				r.Delete("/{id}", leaveHandler.Delete)

				// Admin and team leads
				r.With(middleware.RequireReviewer).Patch("/{id}/status", leaveHandler.UpdateStatus)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Patch("/break", attendanceHandler.UpdateBreak)
				r.Get("/", attendanceHandler.List)
				r.Get("/user/{userId}", attendanceHandler.ListByUser)
				r.Get("/date/{date}", attendanceHandler.ListByDate)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Patch("/{id}/read", notificationHandler.MarkAsRead)
				r.Patch("/read-all", notificationHandler.MarkAllAsRead)
			})
		})
	})
	return r
}

// fileServer mounts a static file handler under path, refusing directory
// listings by way of chi's routing wildcards. An absolute base URL is
// accepted by mounting only its path component.
func fileServer(r chi.Router, path string, root http.FileSystem) {
	if u, err := url.Parse(path); err == nil && u.Host != "" {
		path = u.Path
	}
	if path == "" || strings.ContainsAny(path, "{}*") {
		return
	}
	if path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	r.Get(path+"*", func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}
