package api

import (
	"context"
	"embed"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"blogsmith/internal/adapters/config"
	"blogsmith/internal/agents"
	"blogsmith/internal/metrics"
	"blogsmith/pkg/errors"
	"blogsmith/pkg/logger"
)

//go:embed static
var staticFS embed.FS

// Server serves the one-page UI and the generation API.
type Server struct {
	cfg      config.ServerConfig
	workflow *agents.WorkflowRunner
	hub      *progressHub
	upgrader websocket.Upgrader

	mu    sync.Mutex
	tasks map[string]*agents.Task

	httpServer *http.Server
	log        *logger.Logger
}

// NewServer creates the HTTP server around the workflow runner.
func NewServer(cfg config.ServerConfig, workflow *agents.WorkflowRunner) *Server {
	s := &Server{
		cfg:      cfg,
		workflow: workflow,
		hub:      newProgressHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		tasks: make(map[string]*agents.Task),
		log:   logger.Get().With("component", "api"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/runs/{run_id}", s.handleRunResult)
	mux.HandleFunc("GET /ws/{run_id}", s.handleProgressWS)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.log.Infof("HTTP server listening on %s", s.cfg.Addr())
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server")
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

type generateRequest struct {
	Topic string `json:"topic"`
}

type generateResponse struct {
	RunID string `json:"run_id"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The run must outlive this request; progress and result are fetched
	// over separate connections.
	task, err := s.workflow.Execute(context.Background(), req.Topic, s.hub.Publish)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidInput) {
			s.writeError(w, http.StatusBadRequest, "Please enter a topic for the blog post.")
			return
		}
		s.log.Errorf("Failed to start run: %v", err)
		s.writeError(w, http.StatusInternalServerError, "failed to start generation")
		return
	}

	s.mu.Lock()
	s.tasks[task.RunID] = task
	s.mu.Unlock()

	go func() {
		<-task.Done()
		s.hub.Finish(task.RunID)
	}()

	s.writeJSON(w, http.StatusAccepted, generateResponse{RunID: task.RunID})
}

func (s *Server) handleRunResult(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("run_id")

	s.mu.Lock()
	task, ok := s.tasks[runID]
	s.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown run")
		return
	}

	result, err := task.Result()
	if err != nil {
		if errors.Is(err, errors.ErrRunNotFinished) {
			s.writeJSON(w, http.StatusAccepted, map[string]string{"status": "running"})
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.mu.Lock()
	delete(s.tasks, runID)
	s.mu.Unlock()
	s.hub.Forget(runID)

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleProgressWS(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("run_id")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, cancel := s.hub.Subscribe(runID)
	defer cancel()

	for event := range events {
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(event); err != nil {
			return
		}
	}

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "run finished"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warnf("Failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
