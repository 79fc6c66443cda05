package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Server struct{ mux *chi.Mux }

type options struct {
	logger  zerolog.Logger
	timeout time.Duration
}

type Option func(*options)

// WithLogger replaces the global logger for request logs.
func WithLogger(l zerolog.Logger) Option { return func(o *options) { o.logger = l } }

// WithTimeout bounds each request; 0 disables the limit.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

func New(opts ...Option) *Server {
	o := options{logger: log.Logger, timeout: 15 * time.Second}
	for _, fn := range opts {
		fn(&o)
	}
	m := chi.NewRouter()

	// All middlewares go here (before any routes are added)
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Session)
	if o.timeout > 0 {
		m.Use(Timeout(o.timeout))
	}
	m.Use(Metrics)
	m.Use(Logger(o.logger))

	m.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, http.StatusNotFound, "Not Found", "no route for "+r.URL.Path)
	})
	m.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, http.StatusMethodNotAllowed, "Method Not Allowed", r.Method+" "+r.URL.Path)
	})
	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
