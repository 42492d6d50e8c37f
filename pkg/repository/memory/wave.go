package memory

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model/errs"
	"github.com/secmon-lab/casebook/pkg/domain/model/incident"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

func (r *Memory) PutWave(ctx context.Context, wave incident.AttackWave) error {
	r.incrementCallCount("PutWave")
	if err := wave.Validate(); err != nil {
		return goerr.Wrap(err, "invalid wave", goerr.T(errs.TagValidation))
	}

	r.mu.Lock()
	if _, ok := r.incidents[wave.IncidentID]; !ok {
		r.mu.Unlock()
		return goerr.New("incident of wave not found", goerr.T(errs.TagNotFound),
			goerr.V("incident_id", wave.IncidentID), goerr.V("wave_id", wave.ID))
	}
	r.waves[wave.ID] = &wave
	r.mu.Unlock()

	r.waveW.notify()
	return nil
}

func (r *Memory) ListWaves(ctx context.Context, incidentID types.IncidentID) ([]*incident.AttackWave, error) {
	r.incrementCallCount("ListWaves")
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotWaves(incidentID), nil
}

func (r *Memory) WatchWaves(ctx context.Context, incidentID types.IncidentID) <-chan []*incident.AttackWave {
	return watchSnapshots(ctx, r.waveW, func() []*incident.AttackWave {
		r.mu.RLock()
		defer r.mu.RUnlock()
		return r.snapshotWaves(incidentID)
	})
}

// snapshotWaves requires r.mu held. Newest-first by start time.
func (r *Memory) snapshotWaves(incidentID types.IncidentID) []*incident.AttackWave {
	var waves []*incident.AttackWave
	for _, wave := range r.waves {
		if wave.IncidentID == incidentID {
			waves = append(waves, wave)
		}
	}
	sort.Slice(waves, func(i, j int) bool {
		if !waves[i].StartTime.Equal(waves[j].StartTime.Time) {
			return waves[i].StartTime.After(waves[j].StartTime.Time)
		}
		return waves[i].ID > waves[j].ID
	})
	return waves
}
