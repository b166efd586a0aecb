// Package httpapi exposes the interpreter over HTTP: one session per
// running script, created with POST /sessions and driven by
// subsequent /run and /snapshot calls.
package httpapi

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/lowtek7/songlang/internal/graph"
	"github.com/lowtek7/songlang/internal/interpreter"
	"github.com/lowtek7/songlang/internal/rng"
)

// Server hosts one interpreter session per id. A session's own mutex
// serializes the run and snapshot calls against it; the sessions
// map itself is guarded separately so lookups don't block execution.
type Server struct {
	router      chi.Router
	corsOrigins []string
	rngSeed1    uint64
	rngSeed2    uint64
	scriptDir   string

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	mu    sync.Mutex
	it    *interpreter.Interpreter
	lines []string
}

// NewServer builds a Server with every route and middleware wired.
// corsOrigins may contain "*" to allow any origin. Each session's
// interpreter draws from its own PRNG seeded from seed1/seed2.
// scriptDir is where GET /scripts/{name} reads bundled source files
// from; it may be empty if the host has none.
func NewServer(corsOrigins []string, seed1, seed2 uint64, scriptDir string) *Server {
	s := &Server{
		corsOrigins: corsOrigins,
		rngSeed1:    seed1,
		rngSeed2:    seed2,
		scriptDir:   scriptDir,
		sessions:    make(map[string]*session),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.cors)

	r.Post("/sessions", s.handleCreateSession)
	r.Post("/sessions/{id}/run", s.handleRun)
	r.Get("/sessions/{id}/snapshot", s.handleSnapshot)
	r.Delete("/sessions/{id}", s.handleDeleteSession)
	r.Get("/scripts/{name}", s.handleGetScript)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler, delegating to the chi router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) cors(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(s.corsOrigins))
	allowAll := false
	for _, o := range s.corsOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; ok || allowAll {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) newSession() (string, *session) {
	id := uuid.NewString()
	sess := &session{}
	sess.it = interpreter.New(
		interpreter.WithOutput(func(line string) {
			sess.lines = append(sess.lines, line)
		}),
		interpreter.WithRNG(rng.New(s.rngSeed1, s.rngSeed2)),
	)

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return id, sess
}

func (s *Server) getSession(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Server) deleteSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// snapshotOf is a small helper kept here rather than in internal/graph
// so the JSON shape served to hosts stays an httpapi concern.
func snapshotOf(sess *session) graph.Snapshot {
	return sess.it.Graph.ToSnapshot()
}
