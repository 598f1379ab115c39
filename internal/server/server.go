// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server exposes visualization and badge composition over a local
// HTTP API for web integrations.
//
//	POST /api/v1/visualization       render a document, JSON outcome
//	POST /api/v1/visualization/html  render a document as a viewer page
//	POST /api/v1/badges              compose badges for a validation report
//	GET  /healthz                    liveness
//	GET  /metrics                    Prometheus metrics
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/pomali/autogram/pkg/logging"
	"github.com/pomali/autogram/pkg/session"
)

// DefaultMaxBodyBytes caps request bodies.
const DefaultMaxBodyBytes = 32 << 20

// Options configures a Server.
type Options struct {
	// Session renders documents and owns the native-fallback cache.
	Session *session.Session
	// Metrics defaults to NewMetrics.
	Metrics *Metrics
	// HashAlgorithm names the fingerprint algorithm reported with each
	// outcome; empty means hashing.DefaultAlgorithm.
	HashAlgorithm string
	// Timeout bounds each request; zero disables the limit.
	Timeout time.Duration
	// MaxBodyBytes defaults to DefaultMaxBodyBytes.
	MaxBodyBytes int64
	// PageTitle is shown on HTML pages.
	PageTitle string
	Logger    logging.Logger
}

// Server is the HTTP API.
type Server struct {
	session  *session.Session
	metrics  *Metrics
	hashAlg  string
	timeout  time.Duration
	maxBody  int64
	title    string
	logger   logging.Logger
	handler  http.Handler
	shutdown time.Duration
}

// New creates a Server.
func New(opts Options) (*Server, error) {
	if opts.Session == nil {
		return nil, errors.New("server requires a session")
	}
	s := &Server{
		session:  opts.Session,
		metrics:  opts.Metrics,
		hashAlg:  opts.HashAlgorithm,
		timeout:  opts.Timeout,
		maxBody:  opts.MaxBodyBytes,
		title:    opts.PageTitle,
		logger:   logging.EnsureLogger(opts.Logger),
		shutdown: 10 * time.Second,
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	if s.title == "" {
		s.title = "Autogram"
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if s.timeout > 0 {
			r.Use(middleware.Timeout(s.timeout))
		}
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/visualization", s.handleVisualization)
		r.Post("/visualization/html", s.handleVisualizationHTML)
		r.Post("/badges", s.handleBadges)
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.WithFields(map[string]interface{}{
			logging.FieldRequestID: middleware.GetReqID(r.Context()),
			"method":               r.Method,
			"path":                 r.URL.Path,
			"status":               ww.Status(),
			"duration":             time.Since(start).String(),
		}).Debugln("Handled request")
	})
}

// Serve accepts connections on l until ctx ends, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Listening on %s", l.Addr())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
		defer cancel()
		s.logger.Infoln("Shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}
