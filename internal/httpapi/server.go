package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"agentd/internal/scheduler"
	"agentd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Submit(agent, task string, priority scheduler.Priority, requester string) (scheduler.Ack, error)
	Status() types.StatusResponse
	Agents() []types.AgentSpec
	Ready() bool
}

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// The chat front end is a cross-origin browser client.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(MetricsMiddleware)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/submit", func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.SubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Agent) == "" {
			writeJSONError(w, http.StatusBadRequest, "agent is required")
			return
		}
		if strings.TrimSpace(req.Task) == "" {
			writeJSONError(w, http.StatusBadRequest, "task is required")
			return
		}
		prio, err := scheduler.ParsePriority(req.Priority)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}

		ack, err := svc.Submit(req.Agent, req.Task, prio, req.Requester)
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case scheduler.IsAgentNotFound(err):
				status = http.StatusNotFound
			case scheduler.IsQueueFull(err):
				status = http.StatusTooManyRequests
				IncrementBackpressure("queue_full")
			case scheduler.IsDependencyUnavailable(err):
				status = http.StatusServiceUnavailable
			}
			logSubmit(r, req, status, err)
			writeJSONBody(w, status, types.SubmitResponse{Accepted: false, Reason: err.Error()})
			return
		}
		logSubmit(r, req, http.StatusAccepted, nil)
		writeJSONBody(w, http.StatusAccepted, types.SubmitResponse{
			Accepted:  true,
			RequestID: ack.RequestID,
			QueueSize: ack.QueueSize,
		})
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/agents", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.AgentsResponse{Agents: svc.Agents()}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("closing"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// writeJSONBody writes a JSON payload with the given status code.
func writeJSONBody(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
