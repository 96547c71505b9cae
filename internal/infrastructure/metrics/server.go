package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/logging"
)

const (
	defaultOutcomeLimit = 50
	maxOutcomeLimit     = 500
	shutdownTimeout     = 5 * time.Second
	readHeaderTimeout   = 5 * time.Second
)

// Server exposes /metrics, /healthz and the journal over HTTP.
type Server struct {
	metrics *Metrics
	journal port.OutcomeJournal
}

// NewServer creates a server. journal may be nil, which disables /v1/outcomes.
func NewServer(m *Metrics, journal port.OutcomeJournal) *Server {
	return &Server{metrics: m, journal: journal}
}

// Router returns the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	r.Get("/v1/outcomes", s.handleListOutcomes)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	log := logging.FromContext(ctx)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Debug().Msg("metrics server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"journal_enabled": s.journal != nil,
	})
}

type outcomeResponse struct {
	RequestID  string   `json:"request_id"`
	Origin     string   `json:"origin"`
	WindowID   string   `json:"window_id"`
	Types      []string `json:"types"`
	Variant    string   `json:"variant"`
	Decision   string   `json:"decision"`
	Cause      string   `json:"cause"`
	FinalState string   `json:"final_state"`
	Ephemeral  bool     `json:"ephemeral"`
	DurationMs int64    `json:"duration_ms"`
	EndedAt    int64    `json:"ended_at"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleListOutcomes(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		respondError(w, http.StatusNotFound, "journal_disabled", "the outcome journal is disabled")
		return
	}

	limit := defaultOutcomeLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxOutcomeLimit {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	outcomes, err := s.journal.ListRecent(r.Context(), limit)
	if err != nil {
		logging.FromContext(r.Context()).Warn().Err(err).Msg("failed to list outcomes")
		respondError(w, http.StatusInternalServerError, "journal_error", "failed to read the journal")
		return
	}

	resp := make([]outcomeResponse, 0, len(outcomes))
	for i := range outcomes {
		o := &outcomes[i]
		types := make([]string, len(o.Types))
		for j, t := range o.Types {
			types[j] = string(t)
		}
		resp = append(resp, outcomeResponse{
			RequestID:  o.RequestID,
			Origin:     o.Origin,
			WindowID:   o.WindowID,
			Types:      types,
			Variant:    string(o.Variant),
			Decision:   string(o.Decision),
			Cause:      string(o.Cause),
			FinalState: string(o.FinalState),
			Ephemeral:  o.Ephemeral,
			DurationMs: o.DurationMillis(),
			EndedAt:    o.EndedAt,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"outcomes": resp})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
