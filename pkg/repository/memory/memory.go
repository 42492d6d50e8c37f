package memory

import (
	"sync"

	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
	"github.com/secmon-lab/casebook/pkg/domain/model/incident"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

// Memory is the in-process entity store. A single RWMutex guards all maps so
// a reader always observes either the pre- or post-image of an upsert, never
// a torn record.
type Memory struct {
	mu sync.RWMutex

	incidents   map[types.IncidentID]*incident.Incident
	waves       map[types.WaveID]*incident.AttackWave
	mitigations map[types.MitigationID]*incident.Mitigation
	evidence    map[types.EvidenceID]*incident.Evidence
	comms       map[types.CommID]*incident.Communication

	// auditLog keeps insertion order, the causal source of truth when
	// timestamps collide. auditIDs guards append-only semantics.
	auditLog []*incident.AuditEntry
	auditIDs map[types.AuditEntryID]struct{}

	incidentW   *watcher
	waveW       *watcher
	mitigationW *watcher
	evidenceW   *watcher
	auditW      *watcher
	commW       *watcher

	// Call counter for tracking method invocations in tests
	callCounts map[string]int
	callMu     sync.RWMutex
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		incidents:   make(map[types.IncidentID]*incident.Incident),
		waves:       make(map[types.WaveID]*incident.AttackWave),
		mitigations: make(map[types.MitigationID]*incident.Mitigation),
		evidence:    make(map[types.EvidenceID]*incident.Evidence),
		comms:       make(map[types.CommID]*incident.Communication),
		auditIDs:    make(map[types.AuditEntryID]struct{}),
		incidentW:   newWatcher(),
		waveW:       newWatcher(),
		mitigationW: newWatcher(),
		evidenceW:   newWatcher(),
		auditW:      newWatcher(),
		commW:       newWatcher(),
		callCounts:  make(map[string]int),
	}
}

func (r *Memory) incrementCallCount(methodName string) {
	r.callMu.Lock()
	defer r.callMu.Unlock()
	r.callCounts[methodName]++
}

// CallCount returns the number of times a repository method has been called.
func (r *Memory) CallCount(methodName string) int {
	r.callMu.RLock()
	defer r.callMu.RUnlock()
	return r.callCounts[methodName]
}
