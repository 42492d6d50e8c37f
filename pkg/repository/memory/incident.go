package memory

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model/errs"
	"github.com/secmon-lab/casebook/pkg/domain/model/incident"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

func (r *Memory) PutIncident(ctx context.Context, inc incident.Incident) error {
	r.incrementCallCount("PutIncident")
	if err := inc.Validate(); err != nil {
		return goerr.Wrap(err, "invalid incident", goerr.T(errs.TagValidation))
	}

	r.mu.Lock()
	r.incidents[inc.ID] = &inc
	r.mu.Unlock()

	r.incidentW.notify()
	return nil
}

func (r *Memory) GetIncident(ctx context.Context, id types.IncidentID) (*incident.Incident, error) {
	r.incrementCallCount("GetIncident")
	r.mu.RLock()
	defer r.mu.RUnlock()

	inc, ok := r.incidents[id]
	if !ok {
		return nil, nil
	}
	return inc, nil
}

func (r *Memory) ListIncidents(ctx context.Context) ([]*incident.Incident, error) {
	r.incrementCallCount("ListIncidents")
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotIncidents(), nil
}

func (r *Memory) WatchIncidents(ctx context.Context) <-chan []*incident.Incident {
	return watchSnapshots(ctx, r.incidentW, func() []*incident.Incident {
		r.mu.RLock()
		defer r.mu.RUnlock()
		return r.snapshotIncidents()
	})
}

func (r *Memory) DeleteIncident(ctx context.Context, id types.IncidentID) error {
	r.incrementCallCount("DeleteIncident")
	r.mu.Lock()
	delete(r.incidents, id)
	r.mu.Unlock()

	r.incidentW.notify()
	return nil
}

// snapshotIncidents requires r.mu held. Newest-first by start time.
func (r *Memory) snapshotIncidents() []*incident.Incident {
	incidents := make([]*incident.Incident, 0, len(r.incidents))
	for _, inc := range r.incidents {
		incidents = append(incidents, inc)
	}
	sort.Slice(incidents, func(i, j int) bool {
		if !incidents[i].StartTime.Equal(incidents[j].StartTime.Time) {
			return incidents[i].StartTime.After(incidents[j].StartTime.Time)
		}
		return incidents[i].ID > incidents[j].ID
	})
	return incidents
}
