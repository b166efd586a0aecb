package httpapi

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/lowtek7/songlang/internal/lexer"
	"github.com/lowtek7/songlang/internal/parser"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type createSessionResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, _ := s.newSession()
	writeJSON(w, http.StatusCreated, createSessionResponse{ID: id})
}

type runRequest struct {
	Source string `json:"source"`
}

type runResponse struct {
	Output []string `json:"output"`
	Error  string   `json:"error,omitempty"`
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tokens, err := lexer.Tokenize(req.Source)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, runResponse{Error: err.Error()})
		return
	}
	stmts, err := parser.Parse(tokens)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, runResponse{Error: err.Error()})
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.lines = nil
	runErr := sess.it.Execute(stmts)

	resp := runResponse{Output: sess.lines}
	if runErr != nil {
		resp.Error = runErr.Error()
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusOK, snapshotOf(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.getSession(id); !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	s.deleteSession(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetScript(w http.ResponseWriter, r *http.Request) {
	if s.scriptDir == "" {
		writeError(w, http.StatusNotFound, "no script directory configured")
		return
	}

	name := chi.URLParam(r, "name")
	if name != filepath.Base(name) {
		writeError(w, http.StatusBadRequest, "invalid script name")
		return
	}

	data, err := os.ReadFile(filepath.Join(s.scriptDir, name))
	if err != nil {
		writeError(w, http.StatusNotFound, "script not found")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
