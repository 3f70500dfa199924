// Package httpserver exposes the account and store operations over HTTP.
// It owns request decoding, bearer-token extraction and the translation of
// service errors to status codes; all business rules live in the accounts
// package.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/prestoapp/presto-server/internal/logging"
	"github.com/prestoapp/presto-server/internal/server/accounts"
)

// maxBodyBytes caps request bodies. Store documents carry base64-inlined
// images, so the limit is generous.
const maxBodyBytes = 50 << 20

type HTTPServer struct {
	address         string
	logger          logging.Logger
	accounts        *accounts.Service
	shutdownTimeout time.Duration
}

func NewHTTPServer(a string, l logging.Logger, as *accounts.Service, shutdownTimeout time.Duration) *HTTPServer {
	return &HTTPServer{
		address:         a,
		logger:          l.With("module", "http_server"),
		accounts:        as,
		shutdownTimeout: shutdownTimeout,
	}
}

// Router assembles the chi router with all middlewares and routes.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestLogger)
	r.Use(allowCORS)

	r.Get("/", s.index)
	r.Get("/ping", s.ping)

	// The web client calls the auth endpoints under the /admin prefix;
	// the bare /auth alias is kept for API clients.
	for _, prefix := range []string{"/admin/auth", "/auth"} {
		r.Route(prefix, func(r chi.Router) {
			r.Post("/login", s.login)
			r.Post("/register", s.register)

			// Token verification happens here, before any gated service call.
			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/logout", s.logout)
			})
		})
	}

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/store", s.getStore)
		r.Put("/store", s.setStore)
	})

	return r
}

// Run starts the HTTP server and blocks until ctx is canceled, then shuts
// down gracefully within the configured timeout.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
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
