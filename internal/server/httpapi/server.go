package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/irabeny89/ebbs2022-sub000/internal/logging"
)

const shutdownGrace = 5 * time.Second

type HTTPServer struct {
	address        string
	handler        *Handler
	allowedOrigins []string
	logger         logging.Logger
}

func NewHTTPServer(address string, handler *Handler, allowedOrigins []string, logger logging.Logger) *HTTPServer {
	return &HTTPServer{
		address:        address,
		handler:        handler,
		allowedOrigins: allowedOrigins,
		logger:         logger.With("module", "http_server"),
	}
}

// Routes builds the full route table. Exposed so tests can mount the exact
// production routing on an httptest server.
func (s *HTTPServer) Routes() http.Handler {
	h := s.handler

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", h.login)
	mux.HandleFunc("POST /api/auth/register", h.register)
	mux.HandleFunc("POST /api/auth/refresh", h.refresh)
	mux.HandleFunc("POST /api/auth/logout", h.logout)
	mux.HandleFunc("POST /api/auth/passcode", h.requestPasscode)
	mux.HandleFunc("POST /api/auth/password", h.changePassword)
	mux.HandleFunc("GET /api/users/me", h.requireAuth(h.me))

	// Credentials must be allowed or browsers drop the refresh cookie.
	c := cors.New(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	return c.Handler(mux)
}

func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
