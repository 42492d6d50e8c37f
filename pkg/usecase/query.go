package usecase

import (
	"context"

	"github.com/secmon-lab/casebook/pkg/domain/model/incident"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

// Read-side passthroughs for controllers. Snapshots are ordered newest-first
// by the repository.

func (u *UseCases) GetIncident(ctx context.Context, id types.IncidentID) (*incident.Incident, error) {
	return u.repository.GetIncident(ctx, id)
}

func (u *UseCases) ListIncidents(ctx context.Context) ([]*incident.Incident, error) {
	return u.repository.ListIncidents(ctx)
}

func (u *UseCases) ListWaves(ctx context.Context, incidentID types.IncidentID) ([]*incident.AttackWave, error) {
	return u.repository.ListWaves(ctx, incidentID)
}

func (u *UseCases) ListMitigations(ctx context.Context, incidentID types.IncidentID) ([]*incident.Mitigation, error) {
	return u.repository.ListMitigations(ctx, incidentID)
}

func (u *UseCases) ListEvidence(ctx context.Context, incidentID types.IncidentID) ([]*incident.Evidence, error) {
	return u.repository.ListEvidence(ctx, incidentID)
}

func (u *UseCases) ListAuditEntries(ctx context.Context, incidentID types.IncidentID) ([]*incident.AuditEntry, error) {
	return u.repository.ListAuditEntries(ctx, incidentID)
}

func (u *UseCases) ListCommunications(ctx context.Context, incidentID types.IncidentID) ([]*incident.Communication, error) {
	return u.repository.ListCommunications(ctx, incidentID)
}
