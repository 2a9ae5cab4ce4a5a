package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/information-sharing-networks/docusign-client/internal/api"
	"github.com/information-sharing-networks/docusign-client/internal/database"
	"github.com/information-sharing-networks/docusign-client/internal/logger"
	"github.com/information-sharing-networks/docusign-client/pkg/connect"
)

type NotificationStore interface {
	SaveNotification(ctx context.Context, n *connect.Notification) (database.SaveResult, error)
}

type ConnectHandler struct {
	store NotificationStore
}

func NewConnectHandler(store NotificationStore) *ConnectHandler {
	return &ConnectHandler{store: store}
}

type NotificationReceivedResponse struct {
	EnvelopeID    string `json:"envelopeId" example:"4b728be4-4e6e-4a32-a6f4-a1e1f6b5f1d1"`
	StatusUpdated bool   `json:"statusUpdated" example:"true"`
	EventsCreated int    `json:"eventsCreated" example:"3"`
}

// HandleNotification godoc
//
//	@Summary		Receive a DocuSign Connect notification
//	@Description	Receives the DocuSignEnvelopeInformation XML document posted by DocuSign Connect.
//	@Description
//	@Description	When HMAC keys are configured (CONNECT_HMAC_KEYS) the request must carry a valid `X-DocuSign-Signature-N` header.
//	@Description
//	@Description	The envelope status is only updated when the notification is more recent than the last one received.
//	@Description	Envelope and recipient events are recorded once: notifications can be resent safely.
//	@Tags			Connect
//	@Accept			xml
//	@Produce		json
//	@Param			X-DocuSign-Signature-1	header		string							false	"base64 HMAC-SHA256 of the body"
//	@Success		200						{object}	NotificationReceivedResponse	"Notification stored"
//	@Failure		400						{object}	api.ErrorResponse				"Malformed notification"
//	@Failure		401						{object}	api.ErrorResponse				"Missing or invalid signature"
//	@Router			/connect [post]
func (h *ConnectHandler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	reqLogger := logger.ContextRequestLogger(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			api.RespondWithErrorResponse(w, r, api.NewRequestTooLargeError(
				fmt.Sprintf("Request body exceeds maximum allowed size (%d bytes)", maxBytesErr.Limit)))
			return
		}
		api.RespondWithErrorResponse(w, r, api.WrapMalformedRequestError(err, "could not read request body"))
		return
	}

	notification, err := connect.Parse(body)
	if err != nil {
		api.RespondWithErrorResponse(w, r, api.WrapMalformedRequestError(err, "could not parse notification"))
		return
	}

	logger.ContextWithLogAttrs(r.Context(),
		slog.String("envelope_id", notification.EnvelopeID()),
		slog.String("envelope_status", notification.Envelope.Status),
	)

	result, err := h.store.SaveNotification(r.Context(), notification)
	if err != nil {
		if errors.Is(err, connect.ErrMalformed) || errors.Is(err, connect.ErrMissingStatus) || errors.Is(err, connect.ErrUnknownStatus) {
			api.RespondWithErrorResponse(w, r, api.WrapMalformedRequestError(err, "invalid notification"))
			return
		}
		api.RespondWithErrorResponse(w, r, api.WrapInternalError(err, "could not store notification"))
		return
	}

	reqLogger.Info("Connect notification stored",
		slog.String("envelope_id", result.EnvelopeID),
		slog.Bool("status_updated", result.StatusUpdated),
		slog.Int("events_created", result.EventsCreated),
	)

	api.RespondWithJSONPayload(w, http.StatusOK, NotificationReceivedResponse{
		EnvelopeID:    result.EnvelopeID,
		StatusUpdated: result.StatusUpdated,
		EventsCreated: result.EventsCreated,
	})
}
