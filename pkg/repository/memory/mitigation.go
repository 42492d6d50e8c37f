package memory

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model/errs"
	"github.com/secmon-lab/casebook/pkg/domain/model/incident"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

func (r *Memory) PutMitigation(ctx context.Context, mitigation incident.Mitigation) error {
	r.incrementCallCount("PutMitigation")
	if err := mitigation.Validate(); err != nil {
		return goerr.Wrap(err, "invalid mitigation", goerr.T(errs.TagValidation))
	}

	r.mu.Lock()
	if _, ok := r.incidents[mitigation.IncidentID]; !ok {
		r.mu.Unlock()
		return goerr.New("incident of mitigation not found", goerr.T(errs.TagNotFound),
			goerr.V("incident_id", mitigation.IncidentID), goerr.V("mitigation_id", mitigation.ID))
	}
	if mitigation.WaveID != types.EmptyWaveID {
		wave, ok := r.waves[mitigation.WaveID]
		if !ok || wave.IncidentID != mitigation.IncidentID {
			r.mu.Unlock()
			return goerr.New("wave of mitigation not found in incident", goerr.T(errs.TagNotFound),
				goerr.V("incident_id", mitigation.IncidentID), goerr.V("wave_id", mitigation.WaveID))
		}
	}
	r.mitigations[mitigation.ID] = &mitigation
	r.mu.Unlock()

	r.mitigationW.notify()
	return nil
}

func (r *Memory) ListMitigations(ctx context.Context, incidentID types.IncidentID) ([]*incident.Mitigation, error) {
	r.incrementCallCount("ListMitigations")
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotMitigations(incidentID), nil
}

func (r *Memory) WatchMitigations(ctx context.Context, incidentID types.IncidentID) <-chan []*incident.Mitigation {
	return watchSnapshots(ctx, r.mitigationW, func() []*incident.Mitigation {
		r.mu.RLock()
		defer r.mu.RUnlock()
		return r.snapshotMitigations(incidentID)
	})
}

// snapshotMitigations requires r.mu held. Implemented mitigations come first,
// newest implementation first; unimplemented ones follow in creation order.
func (r *Memory) snapshotMitigations(incidentID types.IncidentID) []*incident.Mitigation {
	var mitigations []*incident.Mitigation
	for _, m := range r.mitigations {
		if m.IncidentID == incidentID {
			mitigations = append(mitigations, m)
		}
	}
	sort.Slice(mitigations, func(i, j int) bool {
		mi, mj := mitigations[i], mitigations[j]
		switch {
		case mi.ImplementedAt != nil && mj.ImplementedAt != nil:
			if !mi.ImplementedAt.Equal(mj.ImplementedAt.Time) {
				return mi.ImplementedAt.After(mj.ImplementedAt.Time)
			}
			return mi.ID > mj.ID
		case mi.ImplementedAt != nil:
			return true
		case mj.ImplementedAt != nil:
			return false
		default:
			return mi.ID < mj.ID
		}
	})
	return mitigations
}
