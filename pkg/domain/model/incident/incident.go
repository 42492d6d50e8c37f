package incident

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/utils/clock"
)

// Incident is the top-level case record for one attack event. It is a value
// type; updates are expressed by producing a new record and upserting it.
type Incident struct {
	ID              types.IncidentID     `json:"id"`
	Title           string               `json:"title"`
	AffectedService string               `json:"affected_service"`
	Description     string               `json:"description"`
	Severity        types.Severity       `json:"severity"`
	Status          types.IncidentStatus `json:"status"`
	StartTime       types.Time           `json:"start_time"`
	EndTime         *types.Time          `json:"end_time,omitempty"`
}

func New(ctx context.Context, title, affectedService, description string, severity types.Severity) Incident {
	if severity == "" {
		severity = types.SeverityHigh
	}
	return Incident{
		ID:              types.NewIncidentID(),
		Title:           strings.TrimSpace(title),
		AffectedService: strings.TrimSpace(affectedService),
		Description:     strings.TrimSpace(description),
		Severity:        severity,
		Status:          types.IncidentStatusDetected,
		StartTime:       types.NewTime(clock.Now(ctx)),
	}
}

// WithStatus returns a copy transitioned to the given status. EndTime is
// stamped only on the transition to CLOSED; an already-set EndTime survives
// later non-CLOSED transitions.
func (x Incident) WithStatus(ctx context.Context, status types.IncidentStatus) Incident {
	x.Status = status
	if status == types.IncidentStatusClosed {
		endTime := types.NewTime(clock.Now(ctx))
		x.EndTime = &endTime
	}
	return x
}

func (x *Incident) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid incident ID")
	}
	if x.Title == "" {
		return goerr.New("incident title is required")
	}
	if err := x.Severity.Validate(); err != nil {
		return goerr.Wrap(err, "invalid incident severity")
	}
	if err := x.Status.Validate(); err != nil {
		return goerr.Wrap(err, "invalid incident status")
	}
	if x.EndTime != nil && x.EndTime.Before(x.StartTime.Time) {
		return goerr.New("incident end time precedes start time",
			goerr.V("start_time", x.StartTime), goerr.V("end_time", x.EndTime))
	}
	return nil
}
