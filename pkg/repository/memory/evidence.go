package memory

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model/errs"
	"github.com/secmon-lab/casebook/pkg/domain/model/incident"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

func (r *Memory) PutEvidence(ctx context.Context, evidence incident.Evidence) error {
	r.incrementCallCount("PutEvidence")
	if err := evidence.Validate(); err != nil {
		return goerr.Wrap(err, "invalid evidence", goerr.T(errs.TagValidation))
	}

	r.mu.Lock()
	if _, ok := r.incidents[evidence.IncidentID]; !ok {
		r.mu.Unlock()
		return goerr.New("incident of evidence not found", goerr.T(errs.TagNotFound),
			goerr.V("incident_id", evidence.IncidentID), goerr.V("evidence_id", evidence.ID))
	}
	if evidence.WaveID != types.EmptyWaveID {
		wave, ok := r.waves[evidence.WaveID]
		if !ok || wave.IncidentID != evidence.IncidentID {
			r.mu.Unlock()
			return goerr.New("wave of evidence not found in incident", goerr.T(errs.TagNotFound),
				goerr.V("incident_id", evidence.IncidentID), goerr.V("wave_id", evidence.WaveID))
		}
	}
	r.evidence[evidence.ID] = &evidence
	r.mu.Unlock()

	r.evidenceW.notify()
	return nil
}

func (r *Memory) ListEvidence(ctx context.Context, incidentID types.IncidentID) ([]*incident.Evidence, error) {
	r.incrementCallCount("ListEvidence")
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotEvidence(incidentID), nil
}

func (r *Memory) WatchEvidence(ctx context.Context, incidentID types.IncidentID) <-chan []*incident.Evidence {
	return watchSnapshots(ctx, r.evidenceW, func() []*incident.Evidence {
		r.mu.RLock()
		defer r.mu.RUnlock()
		return r.snapshotEvidence(incidentID)
	})
}

// snapshotEvidence requires r.mu held. Newest-first by collection time.
func (r *Memory) snapshotEvidence(incidentID types.IncidentID) []*incident.Evidence {
	var artifacts []*incident.Evidence
	for _, e := range r.evidence {
		if e.IncidentID == incidentID {
			artifacts = append(artifacts, e)
		}
	}
	sort.Slice(artifacts, func(i, j int) bool {
		if !artifacts[i].CollectedAt.Equal(artifacts[j].CollectedAt.Time) {
			return artifacts[i].CollectedAt.After(artifacts[j].CollectedAt.Time)
		}
		return artifacts[i].ID > artifacts[j].ID
	})
	return artifacts
}
