package incident

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/utils/clock"
)

// Mitigation is an operator-applied countermeasure. ImplementedAt is stamped
// only when the mitigation is recorded already IMPLEMENTED.
type Mitigation struct {
	ID            types.MitigationID     `json:"id"`
	IncidentID    types.IncidentID       `json:"incident_id"`
	WaveID        types.WaveID           `json:"wave_id,omitempty"`
	Type          types.MitigationType   `json:"type"`
	Description   string                 `json:"description"`
	Status        types.MitigationStatus `json:"status"`
	ImplementedAt *types.Time            `json:"implemented_at,omitempty"`
	ImplementedBy string                 `json:"implemented_by"`
	Rationale     string                 `json:"rationale"`
}

func NewMitigation(ctx context.Context, incidentID types.IncidentID, mitigationType types.MitigationType, description string, status types.MitigationStatus, rationale string, waveID types.WaveID, implementedBy string) Mitigation {
	m := Mitigation{
		ID:            types.NewMitigationID(),
		IncidentID:    incidentID,
		WaveID:        waveID,
		Type:          mitigationType,
		Description:   strings.TrimSpace(description),
		Status:        status,
		ImplementedBy: strings.TrimSpace(implementedBy),
		Rationale:     strings.TrimSpace(rationale),
	}
	if status == types.MitigationStatusImplemented {
		implementedAt := types.NewTime(clock.Now(ctx))
		m.ImplementedAt = &implementedAt
	}
	return m
}

func (x *Mitigation) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid mitigation ID")
	}
	if err := x.IncidentID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid incident ID of mitigation")
	}
	if x.WaveID != types.EmptyWaveID {
		if err := x.WaveID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid wave ID of mitigation")
		}
	}
	if err := x.Type.Validate(); err != nil {
		return goerr.Wrap(err, "invalid mitigation type")
	}
	if err := x.Status.Validate(); err != nil {
		return goerr.Wrap(err, "invalid mitigation status")
	}
	if (x.ImplementedAt != nil) != (x.Status == types.MitigationStatusImplemented) {
		return goerr.New("implemented_at must be set exactly when status is IMPLEMENTED",
			goerr.V("status", x.Status), goerr.V("implemented_at", x.ImplementedAt))
	}
	return nil
}
