package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model/errs"
	"github.com/secmon-lab/casebook/pkg/domain/model/incident"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/utils/logging"
)

// CreateIncident opens a new case record in DETECTED status. A blank severity
// defaults to HIGH.
func (u *UseCases) CreateIncident(ctx context.Context, title, affectedService, description string, severity types.Severity) (*incident.Incident, error) {
	inc := incident.New(ctx, title, affectedService, description, severity)
	if err := u.repository.PutIncident(ctx, inc); err != nil {
		return nil, goerr.Wrap(err, "failed to create incident")
	}
	if err := u.logChange(ctx, inc.ID, types.EmptyMitigationID, "Incident created", "Initial detection and triage started"); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("incident created",
		"incident_id", inc.ID, "severity", inc.Severity, "service", inc.AffectedService)
	return &inc, nil
}

// UpdateIncidentStatus transitions the incident. A missing incident is a
// no-op. EndTime is stamped only when transitioning to CLOSED; an already-set
// EndTime survives later non-CLOSED transitions.
func (u *UseCases) UpdateIncidentStatus(ctx context.Context, id types.IncidentID, status types.IncidentStatus) error {
	if err := status.Validate(); err != nil {
		return goerr.Wrap(err, "invalid status transition", goerr.T(errs.TagValidation))
	}

	current, err := u.repository.GetIncident(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to get incident", goerr.V("incident_id", id))
	}
	if current == nil {
		return nil
	}

	updated := current.WithStatus(ctx, status)
	if err := u.repository.PutIncident(ctx, updated); err != nil {
		return goerr.Wrap(err, "failed to update incident status", goerr.V("incident_id", id))
	}
	return u.logChange(ctx, id, types.EmptyMitigationID,
		fmt.Sprintf("Incident status updated to %s", status), "Operational update")
}

// DeleteIncident removes only the incident row. Child records stay in place
// and no audit entry is written; this is a utility removal outside the case
// narrative.
func (u *UseCases) DeleteIncident(ctx context.Context, id types.IncidentID) error {
	return u.repository.DeleteIncident(ctx, id)
}

// DefaultStatusSummary builds the HTML body used for a channel status update
// when the caller provides none.
func (u *UseCases) DefaultStatusSummary(inc *incident.Incident) string {
	return inc.StatusSummary()
}
