package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authmw "github.com/mind-engage/snapstudy/internal/auth/middleware"
	"github.com/mind-engage/snapstudy/internal/quiz"
	"github.com/mind-engage/snapstudy/internal/rbac"
	"github.com/mind-engage/snapstudy/internal/study"
	"github.com/mind-engage/snapstudy/internal/ws"
)

type RouterDeps struct {
	Sessions       *study.Service
	Auth           *authmw.AuthService
	Hub            *ws.Hub
	Activity       ActivityLister
	Locale         quiz.Locale
	MaxUploadBytes int64
	AdminUser      string
	AdminPassHash  string
	CORSOrigins    []string
}

func NewRouter(d RouterDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(authmw.QueryToken(isSocket))
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	owner := func(perm string) func(http.Handler) http.Handler {
		return rbac.RequireOwnerOr(perm, "session:view-all", ownsSession)
	}

	// websockets stay outside the request timeout
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(d.Auth))
		pr.With(owner("session:view")).
			Get("/ws/sessions/{sessionID}", SessionSocketHandler(d.Sessions, d.Hub, originChecker(d.CORSOrigins)))
	})

	r.Group(func(tr chi.Router) {
		tr.Use(middleware.Timeout(30 * time.Second))

		tr.Post("/auth/login", authmw.LoginHandler(d.Auth, d.AdminUser, d.AdminPassHash))
		tr.Post("/api/sessions", CreateSessionHandler(d.Sessions, d.Auth))

		tr.Group(func(pr chi.Router) {
			pr.Use(authmw.JWTMiddleware(d.Auth))

			pr.Route("/api/sessions/{sessionID}", func(sr chi.Router) {
				sr.With(owner("session:view")).Get("/", GetSessionHandler(d.Sessions))
				sr.With(owner("session:upload")).Post("/image", UploadImageHandler(d.Sessions, d.MaxUploadBytes))
				sr.With(owner("session:view")).Get("/image", GetImageHandler(d.Sessions))
				sr.With(owner("session:answer")).Post("/answers", AnswerHandler(d.Sessions))
				sr.With(owner("session:view")).Get("/result", ResultHandler(d.Sessions, d.Locale))
				sr.With(owner("session:view")).Get("/result.xlsx", ExportResultHandler(d.Sessions, d.Locale))
				sr.With(owner("session:restart")).Post("/restart", RestartHandler(d.Sessions))
				sr.With(owner("session:view")).Post("/token", RefreshTokenHandler(d.Sessions, d.Auth))
			})

			if d.Activity != nil {
				pr.With(rbac.Require("activity:view")).
					Get("/admin/activity", ListActivityHandler(d.Activity))
			}
		})
	})
	return r
}

// isSocket marks the routes that may carry their bearer as ?token=.
func isSocket(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/ws/")
}

// originChecker accepts requests without an Origin header and origins on the CORS list.
func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}
