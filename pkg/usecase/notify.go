package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model/errs"
	"github.com/secmon-lab/casebook/pkg/domain/model/incident"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

// PostStatusUpdate sends one HTML update to the configured channel and
// records the send as a CHAT communication. The remote message ID is
// returned.
func (u *UseCases) PostStatusUpdate(ctx context.Context, incidentID types.IncidentID, htmlBody string) (string, error) {
	cfg := u.settings.Snapshot()
	if err := cfg.RequireMessaging(); err != nil {
		return "", err
	}

	target, err := u.repository.GetIncident(ctx, incidentID)
	if err != nil {
		return "", goerr.Wrap(err, "failed to get incident", goerr.V("incident_id", incidentID))
	}
	if target == nil {
		return "", goerr.New("incident not found", goerr.T(errs.TagNotFound), goerr.V("incident_id", incidentID))
	}
	if htmlBody == "" {
		htmlBody = target.StatusSummary()
	}

	msg, err := u.messenger.PostMessage(ctx, cfg.Credential, cfg.TeamID, cfg.ChannelID, htmlBody)
	if err != nil {
		return "", err
	}

	comm := incident.NewCommunication(ctx, incidentID, types.CommChannelChat, cfg.ActorName, htmlBody)
	comm.RemoteLink = msg.ID
	if err := u.repository.PutCommunication(ctx, comm); err != nil {
		return "", goerr.Wrap(err, "failed to record communication", goerr.V("incident_id", incidentID))
	}
	if err := u.logChange(ctx, incidentID, types.EmptyMitigationID,
		"Status update posted to channel", "Cross-team coordination"); err != nil {
		return "", err
	}
	return msg.ID, nil
}

// ProvisionAlertRule creates a threshold alert rule in the external alerting
// engine and returns the engine's raw response.
func (u *UseCases) ProvisionAlertRule(ctx context.Context, incidentID types.IncidentID, ruleName, index, query string, threshold float64) (string, error) {
	cfg := u.settings.Snapshot()
	if err := cfg.RequireAlerting(); err != nil {
		return "", err
	}

	target, err := u.repository.GetIncident(ctx, incidentID)
	if err != nil {
		return "", goerr.Wrap(err, "failed to get incident", goerr.V("incident_id", incidentID))
	}
	if target == nil {
		return "", goerr.New("incident not found", goerr.T(errs.TagNotFound), goerr.V("incident_id", incidentID))
	}

	resp, err := u.alert.CreateThresholdRule(ctx, cfg.AlertEndpoint, cfg.AlertAPIKey, ruleName, index, query, threshold, 0)
	if err != nil {
		return "", err
	}

	if err := u.logChange(ctx, incidentID, types.EmptyMitigationID,
		"Created threshold alert rule", "Automate wave detection"); err != nil {
		return "", err
	}
	return resp, nil
}
