package interfaces

import (
	"context"

	"github.com/secmon-lab/casebook/pkg/domain/model/incident"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

// Repository is the entity store. Put* is a total-replace upsert keyed by
// primary ID. List* returns a point-in-time snapshot ordered newest-first by
// the entity's defining timestamp. Watch* delivers the current snapshot on
// subscription and a fresh one after every change to the underlying rows
// until the context is canceled; delivery is latest-wins per subscriber.
type Repository interface {
	PutIncident(ctx context.Context, inc incident.Incident) error
	// GetIncident returns (nil, nil) when the incident does not exist.
	GetIncident(ctx context.Context, id types.IncidentID) (*incident.Incident, error)
	ListIncidents(ctx context.Context) ([]*incident.Incident, error)
	WatchIncidents(ctx context.Context) <-chan []*incident.Incident
	DeleteIncident(ctx context.Context, id types.IncidentID) error

	PutWave(ctx context.Context, wave incident.AttackWave) error
	ListWaves(ctx context.Context, incidentID types.IncidentID) ([]*incident.AttackWave, error)
	WatchWaves(ctx context.Context, incidentID types.IncidentID) <-chan []*incident.AttackWave

	PutMitigation(ctx context.Context, mitigation incident.Mitigation) error
	ListMitigations(ctx context.Context, incidentID types.IncidentID) ([]*incident.Mitigation, error)
	WatchMitigations(ctx context.Context, incidentID types.IncidentID) <-chan []*incident.Mitigation

	PutEvidence(ctx context.Context, evidence incident.Evidence) error
	ListEvidence(ctx context.Context, incidentID types.IncidentID) ([]*incident.Evidence, error)
	WatchEvidence(ctx context.Context, incidentID types.IncidentID) <-chan []*incident.Evidence

	// PutAuditEntry is append-only: rewriting an existing entry is rejected.
	PutAuditEntry(ctx context.Context, entry incident.AuditEntry) error
	ListAuditEntries(ctx context.Context, incidentID types.IncidentID) ([]*incident.AuditEntry, error)
	WatchAuditEntries(ctx context.Context, incidentID types.IncidentID) <-chan []*incident.AuditEntry

	PutCommunication(ctx context.Context, comm incident.Communication) error
	ListCommunications(ctx context.Context, incidentID types.IncidentID) ([]*incident.Communication, error)
	WatchCommunications(ctx context.Context, incidentID types.IncidentID) <-chan []*incident.Communication
}
