package web

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-cinehub-bot/internal/usecase"
)

// Server is the ops/admin HTTP surface: health, Prometheus metrics and a
// small JWT-guarded stats API. It never touches the Telegram transport.
type Server struct {
	statsUC       usecase.StatsUseCase
	auth          *AuthManager
	adminPassword string
	log           *zerolog.Logger
}

func NewServer(statsUC usecase.StatsUseCase, jwtSecret, adminPassword string, secure bool, logger *zerolog.Logger) *Server {
	return &Server{
		statsUC:       statsUC,
		auth:          NewAuthManager(jwtSecret, secure, 30*time.Minute),
		adminPassword: adminPassword,
		log:           logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", s.loginHandler())
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/stats", s.statsHandler())
		})
	})

	return r
}

// authMiddleware rejects requests without a valid admin JWT.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) passwordMatches(candidate string) bool {
	if s.adminPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(s.adminPassword)) == 1
}
