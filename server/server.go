// Package server exposes the chat UI and its JSON API on a single port.
package server

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/voyagent/voyagent/components"
)

//go:embed index.html
var indexHTML []byte

// Server handles the chat page, the chat endpoint and the transcript
// endpoint. Everything else about a turn is delegated to the session's
// planner.
type Server struct {
	store    *Store
	logger   zerolog.Logger
	requests *atomic.Int64
}

type Option func(*Server)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New returns a Server for the given session store.
func New(store *Store, opts ...Option) *Server {
	ret := &Server{
		store:    store,
		logger:   zerolog.Nop(),
		requests: atomic.NewInt64(0),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Handler returns the HTTP handler of the chat UI.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.indexHandler)
	mux.HandleFunc("/api/chat", s.chatHandler)
	mux.HandleFunc("/api/history", s.historyHandler)
	return s.accessLog(mux)
}

// Requests returns the number of API requests served since startup.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

type chatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID          string               `json:"session_id"`
	Reply              string               `json:"reply"`
	SuggestedQuestions []string             `json:"suggested_questions,omitempty"`
	Usage              *components.ApiUsage `json:"usage,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	s.requests.Inc()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}
	session := s.store.GetOrCreate(req.SessionID)
	output, apiResp, err := session.Chat(r.Context(), req.Message)
	if err != nil {
		// No taxonomy here: model, network and tool failures all surface as
		// the same generic failure.
		s.logger.Error().Err(err).Str("session_id", session.ID).Msg("chat turn failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "the travel agent is unavailable right now, please try again"})
		return
	}
	resp := chatResponse{
		SessionID:          session.ID,
		Reply:              output.ChatMessage,
		SuggestedQuestions: output.SuggestedQuestions,
	}
	if apiResp != nil {
		resp.Usage = apiResp.Usage
	}
	writeJSON(w, http.StatusOK, resp)
}

type historyResponse struct {
	SessionID string `json:"session_id"`
	Turns     []Turn `json:"turns"`
}

func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	s.requests.Inc()
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	id := r.URL.Query().Get("session_id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "session_id is required"})
		return
	}
	session, ok := s.store.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{SessionID: session.ID, Turns: session.Transcript()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
