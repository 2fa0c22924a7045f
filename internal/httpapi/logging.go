package httpapi

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"agentd/pkg/types"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// logSubmit records the outcome of a submission.
func logSubmit(r *http.Request, req types.SubmitRequest, status int, err error) {
	if zlog != nil {
		z := zlog.Info().Str("agent", req.Agent).Str("priority", req.Priority).Int("status", status)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if err != nil {
			z = z.Err(err)
		}
		z.Msg("submit")
		return
	}
	if err != nil {
		log.Printf("submit agent=%s status=%d err=%v", req.Agent, status, err)
		return
	}
	log.Printf("submit agent=%s status=%d", req.Agent, status)
}
