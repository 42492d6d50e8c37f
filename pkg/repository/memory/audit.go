package memory

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model/errs"
	"github.com/secmon-lab/casebook/pkg/domain/model/incident"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

func (r *Memory) PutAuditEntry(ctx context.Context, entry incident.AuditEntry) error {
	r.incrementCallCount("PutAuditEntry")
	if err := entry.Validate(); err != nil {
		return goerr.Wrap(err, "invalid audit entry", goerr.T(errs.TagValidation))
	}

	r.mu.Lock()
	if _, ok := r.auditIDs[entry.ID]; ok {
		r.mu.Unlock()
		return goerr.New("audit entry already exists, log is append-only",
			goerr.T(errs.TagConflict), goerr.V("audit_entry_id", entry.ID))
	}
	r.auditIDs[entry.ID] = struct{}{}
	r.auditLog = append(r.auditLog, &entry)
	r.mu.Unlock()

	r.auditW.notify()
	return nil
}

func (r *Memory) ListAuditEntries(ctx context.Context, incidentID types.IncidentID) ([]*incident.AuditEntry, error) {
	r.incrementCallCount("ListAuditEntries")
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotAuditEntries(incidentID), nil
}

func (r *Memory) WatchAuditEntries(ctx context.Context, incidentID types.IncidentID) <-chan []*incident.AuditEntry {
	return watchSnapshots(ctx, r.auditW, func() []*incident.AuditEntry {
		r.mu.RLock()
		defer r.mu.RUnlock()
		return r.snapshotAuditEntries(incidentID)
	})
}

// snapshotAuditEntries requires r.mu held. Newest-first by timestamp; when
// timestamps collide, later insertion wins, preserving causal order.
func (r *Memory) snapshotAuditEntries(incidentID types.IncidentID) []*incident.AuditEntry {
	var entries []*incident.AuditEntry
	for i := len(r.auditLog) - 1; i >= 0; i-- {
		if r.auditLog[i].IncidentID == incidentID {
			entries = append(entries, r.auditLog[i])
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp.Time)
	})
	return entries
}
