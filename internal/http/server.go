package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"sync"
	"time"

	"complaints/internal/admin"
	"complaints/internal/log"
	appweb "complaints/web"
)

// Routes that change state. Only these are rate limited.
const (
	routeCategories = "/categories"
	routeReload     = "/reload"
)

// Option tunes a Server.
type Option func(*Server)

// WithRateLimit caps POSTs to the mutation routes at limit per window for each
// client IP. Non-positive values keep the defaults of 60 per minute.
func WithRateLimit(limit int, window time.Duration) Option {
	return func(s *Server) {
		s.rateLimit, s.rateWindow = limit, window
	}
}

// Server serves the admin dashboard over a loaded admin.Session.
type Server struct {
	http.Server
	templates    *template.Template
	session      *admin.Session
	logger       *log.Logger
	access       *log.StructuredLogger
	limiter      *mutationLimiter
	rateLimit    int
	rateWindow   time.Duration
	secMetrics   *securityMetrics
	storeTimeout time.Duration
	started      time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, session *admin.Session, logger *log.Logger, storeTimeout time.Duration, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if storeTimeout <= 0 {
		storeTimeout = 10 * time.Second
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           log.Middleware(logger)(mux),
			ReadHeaderTimeout: 10 * time.Second,
		},
		session:      session,
		logger:       logger,
		access:       log.NewStructuredLogger(logger),
		secMetrics:   &securityMetrics{},
		storeTimeout: storeTimeout,
		started:      time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.limiter = newMutationLimiter(s.rateLimit, s.rateWindow, s.secMetrics, routeCategories, routeReload)

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates",
			log.FieldError, err,
			log.FieldComponent, log.ComponentTemplate)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	// UI partials
	mux.HandleFunc("/ui/submissions", s.withSecurityHeaders(s.handleSubmissionsPartial))

	// JSON API
	mux.HandleFunc("/api/submissions", s.withSecurityHeaders(s.handleAPISubmissions))
	mux.HandleFunc("/api/categories", s.withSecurityHeaders(s.handleAPICategories))
	mux.HandleFunc("/api/distribution", s.withSecurityHeaders(s.handleAPIDistribution))

	// Mutations and downloads
	mux.HandleFunc(routeCategories, s.withSecurityHeaders(s.handleCreateCategory))
	mux.HandleFunc("/export.csv", s.withSecurityHeaders(s.handleExport))
	mux.HandleFunc(routeReload, s.withSecurityHeaders(s.handleReload))

	return s
}

// Shutdown stops background routines and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request logging to responses
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), log.LoggerContextKey, s.logger.With(log.FieldRequestID, requestID))
		r = r.WithContext(ctx)
		w.Header().Set("X-Request-ID", requestID)

		s.access.LogHTTPStart(ctx, r, clientIP)

		if reason := detectSuspiciousRequest(r, s.secMetrics); reason != "" {
			s.logger.WarnContext(ctx, "Suspicious request detected",
				log.FieldClientIP, clientIP,
				log.FieldPath, r.URL.Path,
				"reason", reason,
				log.FieldComponent, log.ComponentSecurity)
		}

		if s.limiter.guards(r) {
			if ok, wait := s.limiter.allow(clientIP); !ok {
				s.logger.WarnContext(ctx, "Rate limit exceeded",
					log.FieldClientIP, clientIP,
					log.FieldMethod, r.Method,
					log.FieldPath, r.URL.Path)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
				http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
				return
			}
		}

		applySecurityHeaders(w)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.access.LogHTTPEnd(ctx, r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// storeContext bounds calls that reach the remote store.
func (s *Server) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}
