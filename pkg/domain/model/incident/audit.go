package incident

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/utils/clock"
)

// AuditEntry is one immutable record in the incident's change narrative.
// Entries are append-only; the repository rejects any rewrite.
type AuditEntry struct {
	ID           types.AuditEntryID `json:"id"`
	IncidentID   types.IncidentID   `json:"incident_id"`
	MitigationID types.MitigationID `json:"mitigation_id,omitempty"`
	Timestamp    types.Time         `json:"timestamp"`
	Actor        string             `json:"actor"`
	What         string             `json:"what"`
	Why          string             `json:"why"`
	BeforeRef    string             `json:"before_ref,omitempty"`
	AfterRef     string             `json:"after_ref,omitempty"`
}

func NewAuditEntry(ctx context.Context, incidentID types.IncidentID, mitigationID types.MitigationID, actor, what, why string) AuditEntry {
	return AuditEntry{
		ID:           types.NewAuditEntryID(),
		IncidentID:   incidentID,
		MitigationID: mitigationID,
		Timestamp:    types.NewTime(clock.Now(ctx)),
		Actor:        actor,
		What:         strings.TrimSpace(what),
		Why:          strings.TrimSpace(why),
	}
}

func (x *AuditEntry) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid audit entry ID")
	}
	if err := x.IncidentID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid incident ID of audit entry")
	}
	if x.What == "" {
		return goerr.New("audit entry requires a description of what changed")
	}
	return nil
}
