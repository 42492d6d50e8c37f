package memory

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model/errs"
	"github.com/secmon-lab/casebook/pkg/domain/model/incident"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

func (r *Memory) PutCommunication(ctx context.Context, comm incident.Communication) error {
	r.incrementCallCount("PutCommunication")
	if err := comm.Validate(); err != nil {
		return goerr.Wrap(err, "invalid communication", goerr.T(errs.TagValidation))
	}

	r.mu.Lock()
	if _, ok := r.incidents[comm.IncidentID]; !ok {
		r.mu.Unlock()
		return goerr.New("incident of communication not found", goerr.T(errs.TagNotFound),
			goerr.V("incident_id", comm.IncidentID), goerr.V("comm_id", comm.ID))
	}
	r.comms[comm.ID] = &comm
	r.mu.Unlock()

	r.commW.notify()
	return nil
}

func (r *Memory) ListCommunications(ctx context.Context, incidentID types.IncidentID) ([]*incident.Communication, error) {
	r.incrementCallCount("ListCommunications")
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotCommunications(incidentID), nil
}

func (r *Memory) WatchCommunications(ctx context.Context, incidentID types.IncidentID) <-chan []*incident.Communication {
	return watchSnapshots(ctx, r.commW, func() []*incident.Communication {
		r.mu.RLock()
		defer r.mu.RUnlock()
		return r.snapshotCommunications(incidentID)
	})
}

// snapshotCommunications requires r.mu held. Newest-first by sent time.
func (r *Memory) snapshotCommunications(incidentID types.IncidentID) []*incident.Communication {
	var comms []*incident.Communication
	for _, c := range r.comms {
		if c.IncidentID == incidentID {
			comms = append(comms, c)
		}
	}
	sort.Slice(comms, func(i, j int) bool {
		if !comms[i].SentAt.Equal(comms[j].SentAt.Time) {
			return comms[i].SentAt.After(comms[j].SentAt.Time)
		}
		return comms[i].ID > comms[j].ID
	})
	return comms
}
