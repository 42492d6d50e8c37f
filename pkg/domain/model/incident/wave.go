package incident

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/utils/clock"
)

// AttackWave is one discrete burst of attack traffic within an incident.
type AttackWave struct {
	ID              types.WaveID     `json:"id"`
	IncidentID      types.IncidentID `json:"incident_id"`
	StartTime       types.Time       `json:"start_time"`
	EndTime         *types.Time      `json:"end_time,omitempty"`
	PeakRequestRate int64            `json:"peak_request_rate"`
	TopEndpoint     string           `json:"top_endpoint"`
	Notes           string           `json:"notes"`
}

func NewAttackWave(ctx context.Context, incidentID types.IncidentID, peakRequestRate int64, topEndpoint, notes string) AttackWave {
	return AttackWave{
		ID:              types.NewWaveID(),
		IncidentID:      incidentID,
		StartTime:       types.NewTime(clock.Now(ctx)),
		PeakRequestRate: peakRequestRate,
		TopEndpoint:     strings.TrimSpace(topEndpoint),
		Notes:           strings.TrimSpace(notes),
	}
}

func (x *AttackWave) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid wave ID")
	}
	if err := x.IncidentID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid incident ID of wave")
	}
	if x.PeakRequestRate < 0 {
		return goerr.New("negative peak request rate", goerr.V("peak_request_rate", x.PeakRequestRate))
	}
	return nil
}
