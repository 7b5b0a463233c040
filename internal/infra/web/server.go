// File: internal/infra/web/server.go
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"referral-backend/internal/usecase"
)

type Server struct {
	referralUC  usecase.ReferralUseCase
	leadUC      usecase.LeadUseCase
	corsOrigins []string
	log         *zerolog.Logger
}

func NewServer(
	referralUC usecase.ReferralUseCase,
	leadUC usecase.LeadUseCase,
	corsOrigins []string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		referralUC:  referralUC,
		leadUC:      leadUC,
		corsOrigins: corsOrigins,
		log:         logger,
	}
}

// Router builds the chi router with the public API routes.
func (s *Server) Router() *chi.Mux {
	origins := s.corsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Post("/registrar", s.handleRegister)
	r.Post("/reivindicar", s.handleRedeem)
	r.Post("/leads", s.handleLead)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}
