package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/information-sharing-networks/docusign-client/pkg/connect"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned by the Store getters when no notification was received for the envelope
var ErrNotFound = errors.New("envelope not found")

// Store persists Connect notifications.
type Store struct {
	pool    *pgxpool.Pool
	queries *Queries
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, queries: New(pool)}
}

// SaveResult reports what a notification changed.
type SaveResult struct {
	EnvelopeID string

	// StatusUpdated is false when a more recent notification was already stored for the envelope
	StatusUpdated bool

	// EventsCreated counts the events not seen in earlier notifications
	EventsCreated int
}

// SaveNotification stores a parsed notification in a single transaction.
//
// The envelope status and its recipients are only updated when the notification is more recent than
// the stored one. Events are always recorded; events already stored are ignored.
//
// The notification must have an envelope id and a valid status, time and routing orders:
// parse errors are returned as is (they wrap the connect package errors).
func (s *Store) SaveNotification(ctx context.Context, n *connect.Notification) (SaveResult, error) {
	envelopeID := n.EnvelopeID()
	if envelopeID == "" {
		return SaveResult{}, fmt.Errorf("%w: notification has no EnvelopeID", connect.ErrMalformed)
	}
	status, err := n.EnvelopeStatus()
	if err != nil {
		return SaveResult{}, err
	}
	generated, err := n.TimeGenerated()
	if err != nil {
		return SaveResult{}, err
	}
	recipients, err := n.Recipients()
	if err != nil {
		return SaveResult{}, err
	}
	events, err := n.Events()
	if err != nil {
		return SaveResult{}, err
	}

	result := SaveResult{EnvelopeID: envelopeID}

	err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		q := s.queries.WithTx(tx)

		updated, err := q.UpsertEnvelope(ctx, UpsertEnvelopeParams{
			EnvelopeID:     envelopeID,
			Status:         string(status),
			Subject:        n.Envelope.Subject,
			SenderUserName: n.Envelope.UserName,
			SenderEmail:    n.Envelope.Email,
			TimeGenerated:  generated,
		})
		if err != nil {
			return fmt.Errorf("upsert envelope: %w", err)
		}
		result.StatusUpdated = updated > 0

		if result.StatusUpdated {
			for _, r := range recipients {
				if r.RecipientID == "" {
					continue
				}
				err := q.UpsertEnvelopeRecipient(ctx, UpsertEnvelopeRecipientParams{
					EnvelopeID:    envelopeID,
					RecipientID:   r.RecipientID,
					ClientUserID:  r.ClientUserID,
					RecipientType: r.Type,
					Email:         r.Email,
					UserName:      r.UserName,
					RoutingOrder:  int32(r.RoutingOrder), // #nosec G115 -- routing orders are small
					Status:        r.Status,
					DeclineReason: r.DeclineReason,
				})
				if err != nil {
					return fmt.Errorf("upsert recipient %s: %w", r.RecipientID, err)
				}
			}
		}

		for _, e := range events {
			created, err := q.CreateEnvelopeEvent(ctx, CreateEnvelopeEventParams{
				ID:           uuid.New(),
				EnvelopeID:   envelopeID,
				Object:       string(e.Object),
				Status:       e.Status,
				RecipientID:  e.RecipientID,
				ClientUserID: e.ClientUserID,
				OccurredAt:   e.Time,
			})
			if err != nil {
				return fmt.Errorf("create %s event %s: %w", e.Object, e.Status, err)
			}
			result.EventsCreated += int(created)
		}
		return nil
	})
	if err != nil {
		return SaveResult{}, err
	}
	return result, nil
}

// GetEnvelope returns the stored envelope and its recipients.
func (s *Store) GetEnvelope(ctx context.Context, envelopeID string) (Envelope, []EnvelopeRecipient, error) {
	envelope, err := s.queries.GetEnvelope(ctx, envelopeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Envelope{}, nil, ErrNotFound
	}
	if err != nil {
		return Envelope{}, nil, err
	}
	recipients, err := s.queries.ListEnvelopeRecipients(ctx, envelopeID)
	if err != nil {
		return Envelope{}, nil, err
	}
	return envelope, recipients, nil
}

// ListEnvelopeEvents returns the events of an envelope in chronological order.
func (s *Store) ListEnvelopeEvents(ctx context.Context, envelopeID string) ([]EnvelopeEvent, error) {
	if _, err := s.queries.GetEnvelope(ctx, envelopeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.queries.ListEnvelopeEvents(ctx, envelopeID)
}

// Ping checks the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.queries.IsDatabaseRunning(ctx)
	return err
}
