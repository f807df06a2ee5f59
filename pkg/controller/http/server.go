package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/efa2d19/dailynator/pkg/utils/logging"
	"github.com/efa2d19/dailynator/pkg/utils/safe"
)

type Server struct {
	router              *chi.Mux
	slackEventHandler   *SlackEventHandler
	slackCommandHandler *SlackCommandHandler
	slackSigningSecret  string
}

type Options func(*Server)

func WithSlackWebhook(events *SlackEventHandler, commands *SlackCommandHandler, signingSecret string) Options {
	return func(s *Server) {
		s.slackEventHandler = events
		s.slackCommandHandler = commands
		s.slackSigningSecret = signingSecret
	}
}

func New(opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("OK"))
	})

	// Slack webhook endpoints (if configured) - No auth required, uses signature verification
	if s.slackEventHandler != nil {
		r.Route("/hooks/slack", func(r chi.Router) {
			// Apply Slack signature verification middleware to all /hooks/slack/* routes
			r.Use(SlackSignatureMiddleware(s.slackSigningSecret))

			r.Post("/event", s.slackEventHandler.ServeHTTP)

			if s.slackCommandHandler != nil {
				r.Post("/command", s.slackCommandHandler.ServeHTTP)
			}
		})
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
