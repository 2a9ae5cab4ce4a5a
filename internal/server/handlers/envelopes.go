package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/information-sharing-networks/docusign-client/internal/api"
	"github.com/information-sharing-networks/docusign-client/internal/database"
	"github.com/information-sharing-networks/docusign-client/pkg/connect"
)

type EnvelopeReader interface {
	GetEnvelope(ctx context.Context, envelopeID string) (database.Envelope, []database.EnvelopeRecipient, error)
	ListEnvelopeEvents(ctx context.Context, envelopeID string) ([]database.EnvelopeEvent, error)
}

type EnvelopeHandler struct {
	store EnvelopeReader
}

func NewEnvelopeHandler(store EnvelopeReader) *EnvelopeHandler {
	return &EnvelopeHandler{store: store}
}

type EnvelopeResponse struct {
	EnvelopeID     string              `json:"envelopeId" example:"4b728be4-4e6e-4a32-a6f4-a1e1f6b5f1d1"`
	Status         string              `json:"status" example:"completed"`
	Subject        string              `json:"subject" example:"Please sign the agreement"`
	SenderUserName string              `json:"senderUserName" example:"Sender"`
	SenderEmail    string              `json:"senderEmail" example:"sender@example.com"`
	TimeGenerated  time.Time           `json:"timeGenerated"`
	UpdatedAt      time.Time           `json:"updatedAt"`
	Recipients     []RecipientResponse `json:"recipients"`
}

type RecipientResponse struct {
	RecipientID   string `json:"recipientId" example:"1"`
	ClientUserID  string `json:"clientUserId,omitempty" example:"c1f7b5a2"`
	Type          string `json:"type" example:"Signer"`
	Email         string `json:"email" example:"signer@example.com"`
	UserName      string `json:"userName" example:"Signer"`
	RoutingOrder  int32  `json:"routingOrder" example:"1"`
	Status        string `json:"status" example:"Completed"`
	DeclineReason string `json:"declineReason,omitempty"`
}

// HandleGetEnvelope godoc
//
//	@Summary		Get the status of an envelope
//	@Description	Returns the envelope status and recipients reported by the most recent Connect notification.
//	@Tags			Envelopes
//	@Produce		json
//	@Param			envelopeID	path		string				true	"DocuSign envelope id"
//	@Success		200			{object}	EnvelopeResponse	"Envelope status"
//	@Failure		404			{object}	api.ErrorResponse	"No notification received for the envelope"
//	@Router			/envelopes/{envelopeID} [get]
func (h *EnvelopeHandler) HandleGetEnvelope(w http.ResponseWriter, r *http.Request) {
	envelopeID := chi.URLParam(r, "envelopeID")

	envelope, recipients, err := h.store.GetEnvelope(r.Context(), envelopeID)
	if err != nil {
		h.respondWithStoreError(w, r, envelopeID, err)
		return
	}

	response := EnvelopeResponse{
		EnvelopeID:     envelope.EnvelopeID,
		Status:         envelope.Status,
		Subject:        envelope.Subject,
		SenderUserName: envelope.SenderUserName,
		SenderEmail:    envelope.SenderEmail,
		TimeGenerated:  envelope.TimeGenerated,
		UpdatedAt:      envelope.UpdatedAt,
		Recipients:     make([]RecipientResponse, 0, len(recipients)),
	}
	for _, rec := range recipients {
		response.Recipients = append(response.Recipients, RecipientResponse{
			RecipientID:   rec.RecipientID,
			ClientUserID:  rec.ClientUserID,
			Type:          rec.RecipientType,
			Email:         rec.Email,
			UserName:      rec.UserName,
			RoutingOrder:  rec.RoutingOrder,
			Status:        rec.Status,
			DeclineReason: rec.DeclineReason,
		})
	}

	api.RespondWithJSONPayload(w, http.StatusOK, response)
}

// HandleListEnvelopeEvents godoc
//
//	@Summary		List the events of an envelope
//	@Description	Returns the envelope and recipient status changes received for the envelope, in chronological order.
//	@Tags			Envelopes
//	@Produce		json
//	@Param			envelopeID	path		string				true	"DocuSign envelope id"
//	@Success		200			{array}		connect.Event		"Events"
//	@Failure		404			{object}	api.ErrorResponse	"No notification received for the envelope"
//	@Router			/envelopes/{envelopeID}/events [get]
func (h *EnvelopeHandler) HandleListEnvelopeEvents(w http.ResponseWriter, r *http.Request) {
	envelopeID := chi.URLParam(r, "envelopeID")

	rows, err := h.store.ListEnvelopeEvents(r.Context(), envelopeID)
	if err != nil {
		h.respondWithStoreError(w, r, envelopeID, err)
		return
	}

	events := make([]connect.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, connect.Event{
			Object:       connect.ObjectType(row.Object),
			Status:       row.Status,
			Time:         row.OccurredAt,
			RecipientID:  row.RecipientID,
			ClientUserID: row.ClientUserID,
		})
	}

	api.RespondWithJSONPayload(w, http.StatusOK, events)
}

func (h *EnvelopeHandler) respondWithStoreError(w http.ResponseWriter, r *http.Request, envelopeID string, err error) {
	if errors.Is(err, database.ErrNotFound) {
		api.RespondWithErrorResponse(w, r, api.NewNotFoundError(fmt.Sprintf("no notification received for envelope %s", envelopeID)))
		return
	}
	api.RespondWithErrorResponse(w, r, api.WrapInternalError(err, "could not read envelope"))
}
