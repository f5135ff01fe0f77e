// Package server is the HTTP binding over the dispatcher and orchestrator.
// It is one of two thin transports over the same registry; the other is the
// in-process OpenAI function-calling manifest.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	prepx "github.com/salesloop/prepagent/agent/agents/prep"
	contractx "github.com/salesloop/prepagent/agent/contract"
	dispatchx "github.com/salesloop/prepagent/agent/dispatch"
	toolx "github.com/salesloop/prepagent/agent/tool"
)

const maxRequestSizeBytes = 1 << 20

type Config struct {
	Addr           string        `split_words:"true" default:":8080"`
	RequestTimeout time.Duration `split_words:"true" default:"30s"`
}

type Server struct {
	dispatcher *dispatchx.Dispatcher
	registry   *toolx.Registry
	gate       *dispatchx.AuthGate
	orch       *prepx.Orchestrator

	requestTimeout time.Duration
}

func New(dispatcher *dispatchx.Dispatcher, registry *toolx.Registry, gate *dispatchx.AuthGate, orch *prepx.Orchestrator, cfg Config) (*Server, error) {
	if dispatcher == nil || registry == nil || gate == nil || orch == nil {
		return nil, errors.New("server: all collaborators are required")
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Server{
		dispatcher:     dispatcher,
		registry:       registry,
		gate:           gate,
		orch:           orch,
		requestTimeout: timeout,
	}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /tools/{name}", s.handleTool)
	mux.HandleFunc("GET /contracts", s.handleContracts)
	mux.HandleFunc("POST /agent/act", s.handleAct)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

// Start blocks serving HTTP until the listener fails or ctx is canceled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: s.requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	args, derr := decodeBody(r)
	if derr != nil {
		writeError(w, derr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	credential := dispatchx.CredentialFromHeader(r.Header.Get("Authorization"))
	result, derr := s.dispatcher.Invoke(ctx, name, args, credential)
	if derr != nil {
		writeError(w, derr)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleContracts(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "openai" {
		writeJSON(w, http.StatusOK, map[string]any{"tools": s.registry.OpenAITools()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contracts": s.registry.List()})
}

func (s *Server) handleAct(w http.ResponseWriter, r *http.Request) {
	credential := dispatchx.CredentialFromHeader(r.Header.Get("Authorization"))
	if derr := s.gate.Authorize(credential); derr != nil {
		writeError(w, derr)
		return
	}

	args, derr := decodeBody(r)
	if derr != nil {
		writeError(w, derr)
		return
	}
	intent, _ := args["intent"].(string)
	userID, _ := args["userId"].(string)

	// Overall deadline so one slow integration cannot stall the caller.
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	brief, derr := s.orch.Act(ctx, intent, userID)
	if derr != nil {
		writeError(w, derr)
		return
	}
	writeJSON(w, http.StatusOK, brief)
}

// handleHealthz is liveness only and must not touch any upstream.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(r *http.Request) (map[string]any, *contractx.Error) {
	defer r.Body.Close()

	args := map[string]any{}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestSizeBytes))
	if err := dec.Decode(&args); err != nil {
		return nil, contractx.BadRequest("request body must be a JSON object", nil)
	}
	return args, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response failed")
	}
}

func writeError(w http.ResponseWriter, derr *contractx.Error) {
	writeJSON(w, contractx.HTTPStatus(derr.Code), contractx.ErrorResponse{Error: derr})
}
