package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model/incident"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

// AddWave records one burst of attack traffic under the incident.
func (u *UseCases) AddWave(ctx context.Context, incidentID types.IncidentID, peakRequestRate int64, topEndpoint, notes string) (*incident.AttackWave, error) {
	wave := incident.NewAttackWave(ctx, incidentID, peakRequestRate, topEndpoint, notes)
	if err := u.repository.PutWave(ctx, wave); err != nil {
		return nil, goerr.Wrap(err, "failed to record wave", goerr.V("incident_id", incidentID))
	}
	if err := u.logChange(ctx, incidentID, types.EmptyMitigationID, "Attack wave recorded", "Track peak and targeting"); err != nil {
		return nil, err
	}
	return &wave, nil
}

// AddMitigation records a countermeasure. ImplementedAt is stamped only when
// the mitigation is recorded already IMPLEMENTED.
func (u *UseCases) AddMitigation(ctx context.Context, incidentID types.IncidentID, mitigationType types.MitigationType, description string, status types.MitigationStatus, rationale string, waveID types.WaveID, implementedBy string) (*incident.Mitigation, error) {
	mitigation := incident.NewMitigation(ctx, incidentID, mitigationType, description, status, rationale, waveID, implementedBy)
	if err := u.repository.PutMitigation(ctx, mitigation); err != nil {
		return nil, goerr.Wrap(err, "failed to record mitigation", goerr.V("incident_id", incidentID))
	}
	if err := u.logChange(ctx, incidentID, mitigation.ID,
		fmt.Sprintf("Mitigation added: %s", mitigationType), rationale); err != nil {
		return nil, err
	}
	return &mitigation, nil
}

// AddManualEvidence records a local artifact reference without remote sync.
// RemoteLink and ContentHash may be supplied when known.
func (u *UseCases) AddManualEvidence(ctx context.Context, incidentID types.IncidentID, evidenceType types.EvidenceType, localRef, collectedBy string, waveID types.WaveID, remoteLink, contentHash string) (*incident.Evidence, error) {
	evidence := incident.NewEvidence(ctx, incidentID, evidenceType, localRef, collectedBy)
	evidence.WaveID = waveID
	evidence.RemoteLink = remoteLink
	evidence.ContentHash = contentHash

	if err := u.repository.PutEvidence(ctx, evidence); err != nil {
		return nil, goerr.Wrap(err, "failed to record evidence", goerr.V("incident_id", incidentID))
	}
	if err := u.logChange(ctx, incidentID, types.EmptyMitigationID,
		fmt.Sprintf("Evidence added: %s", evidenceType), "Preserve artifacts for handoff"); err != nil {
		return nil, err
	}
	return &evidence, nil
}
