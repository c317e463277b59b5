// ABOUTME: Web UI server for the blog frontend
// ABOUTME: Public reading pages, login, route-guarded admin console, media proxy

package webui

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/makblog/blogfront/internal/apiclient"
	"github.com/makblog/blogfront/internal/console"
	"github.com/makblog/blogfront/internal/session"
)

// viewTTL is how long an admin console view survives without being
// touched before it is pruned.
const viewTTL = 2 * time.Hour

// Config holds web UI configuration.
type Config struct {
	// SecureCookies marks session cookies HTTPS-only.
	SecureCookies bool
}

// Server serves the browser-facing UI. All post data comes from the
// upstream content API through the apiclient; nothing is stored here
// beyond transient admin console views.
type Server struct {
	api    *apiclient.Client
	media  *httputil.ReverseProxy
	config Config
	logger *slog.Logger
	views  *viewRegistry
}

// New creates a Server over the given API client. Media assets are
// reverse-proxied to the client's upstream, mirroring how the post
// image URIs reference /media paths.
func New(api *apiclient.Client, cfg Config) (*Server, error) {
	upstream, err := url.Parse(api.BaseURL())
	if err != nil {
		return nil, err
	}

	return &Server{
		api:    api,
		media:  httputil.NewSingleHostReverseProxy(upstream),
		config: cfg,
		logger: slog.Default().With("component", "webui"),
		views:  newViewRegistry(),
	}, nil
}

// RegisterRoutes registers all UI routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Public routes
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /post/{id}", s.handlePostDetail)
	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.Handle("GET /media/", s.media)

	// Guarded admin routes
	mux.HandleFunc("GET /admin", s.requireSession(s.handleAdminPage))
	mux.HandleFunc("GET /admin/view/{vid}/tab/{tab}", s.requireSession(s.handleTabSwitch))
	mux.HandleFunc("GET /admin/view/{vid}/posts/new", s.requireSession(s.handlePostNew))
	mux.HandleFunc("GET /admin/view/{vid}/posts/{id}/edit", s.requireSession(s.handlePostEdit))
	mux.HandleFunc("GET /admin/view/{vid}/posts/{id}/confirm", s.requireSession(s.handleDeleteConfirm))
	mux.HandleFunc("POST /admin/view/{vid}/posts/{id}/delete", s.requireSession(s.handlePostDelete))
	mux.HandleFunc("POST /admin/view/{vid}/posts/submit", s.requireSession(s.handlePostSubmit))
	mux.HandleFunc("GET /admin/view/{vid}/modal/close", s.requireSession(s.handleModalClose))

	s.logger.Info("ui routes registered")
}

// Handler wraps the registered routes in the access log middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return s.accessLog(mux)
}

// sessionStore builds the cookie-backed session store for one
// request/response pair.
func (s *Server) sessionStore(w http.ResponseWriter, r *http.Request) *session.Store {
	return session.NewStore(session.NewCookieStorage(w, r, s.config.SecureCookies), s.api)
}

// sessionAPI returns the API client bound to the request's session, so
// mutating calls carry the caller's bearer token.
func (s *Server) sessionAPI(w http.ResponseWriter, r *http.Request) *apiclient.Client {
	return s.api.WithTokenSource(s.sessionStore(w, r))
}

// requireSession is the route guard: no token, no admin. Evaluated on
// every request, never cached.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.sessionStore(w, r).Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// accessLog logs one line per request with a generated request ID.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// viewRegistry tracks mounted admin console views by ID.
type viewRegistry struct {
	mu    sync.Mutex
	views map[string]*viewEntry
}

type viewEntry struct {
	console  *console.Console
	lastSeen time.Time
}

func newViewRegistry() *viewRegistry {
	return &viewRegistry{views: make(map[string]*viewEntry)}
}

// put registers a console and returns its view ID, pruning views that
// have gone stale.
func (v *viewRegistry) put(c *console.Console) string {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := time.Now()
	for id, entry := range v.views {
		if now.Sub(entry.lastSeen) > viewTTL {
			entry.console.Unmount()
			delete(v.views, id)
		}
	}

	id := uuid.NewString()
	v.views[id] = &viewEntry{console: c, lastSeen: now}
	return id
}

// get looks up a console by view ID, refreshing its last-seen time.
func (v *viewRegistry) get(id string) (*console.Console, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	entry, ok := v.views[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = time.Now()
	return entry.console, true
}
