package handlers

import (
	"context"
	"net/http"

	"github.com/information-sharing-networks/docusign-client/internal/api"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HandleHealth godoc
//
//	@Summary		Health (liveness) Check
//	@Description	Check if the HTTP service is alive and responding.
//	@Tags			Common
//	@Produce		plain
//
//	@Success		200	{string}	string	"OK"
//
//	@Router			/health/live [get]
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type ReadinessResponse struct {
	Status string `json:"status" example:"ready"`
	Reason string `json:"reason,omitempty" example:"database unavailable"`
}

// HandleReadiness godoc
//
//	@Summary		Readiness Check
//	@Description	Checks if the service is ready to accept traffic (includes database connectivity)
//	@Tags			Common
//	@Produce		json
//	@Success		200	{object}	ReadinessResponse	"status ready"
//	@Failure		503	{object}	ReadinessResponse	"status not ready"
//	@Router			/health/ready [get]
func HandleReadiness(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			api.RespondWithJSONPayload(w, http.StatusServiceUnavailable, ReadinessResponse{
				Status: "not ready",
				Reason: "database unavailable",
			})
			return
		}
		api.RespondWithJSONPayload(w, http.StatusOK, ReadinessResponse{Status: "ready"})
	}
}
