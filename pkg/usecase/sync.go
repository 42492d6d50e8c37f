package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model/errs"
	"github.com/secmon-lab/casebook/pkg/domain/model/incident"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/service/drive"
	"github.com/secmon-lab/casebook/pkg/utils/logging"
)

const metadataFileName = "incident-metadata.json"

// UploadEvidence reads a local artifact, pushes it into the incident's remote
// folder, and records an Evidence row carrying the content hash and remote
// link. Configuration is checked before any file or network I/O.
func (u *UseCases) UploadEvidence(ctx context.Context, incidentID types.IncidentID, evidenceType types.EvidenceType, sourcePath, collectedBy string) (*incident.Evidence, error) {
	cfg := u.settings.Snapshot()
	if err := cfg.RequireDrive(); err != nil {
		return nil, err
	}

	target, err := u.repository.GetIncident(ctx, incidentID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V("incident_id", incidentID))
	}
	if target == nil {
		return nil, goerr.New("incident not found", goerr.T(errs.TagNotFound), goerr.V("incident_id", incidentID))
	}

	data, err := os.ReadFile(filepath.Clean(sourcePath))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read evidence source", goerr.V("source_path", sourcePath))
	}

	displayName := displayNameOf(sourcePath)
	hash := incident.ContentHash(data)

	if _, err := u.drive.EnsureIncidentFolder(ctx, cfg.Credential, cfg.ContainerID, cfg.BasePath, incidentID); err != nil {
		return nil, err
	}

	itemPath := fmt.Sprintf("%s/%s/%s", cfg.BasePath, drive.FolderName(incidentID), displayName)
	item, err := u.drive.UploadBytes(ctx, cfg.Credential, cfg.ContainerID, itemPath, data, guessContentType(displayName))
	if err != nil {
		return nil, err
	}

	evidence := incident.NewEvidence(ctx, incidentID, evidenceType, sourcePath, collectedBy)
	evidence.RemoteLink = item.WebURL
	evidence.ContentHash = hash
	if err := u.repository.PutEvidence(ctx, evidence); err != nil {
		return nil, goerr.Wrap(err, "failed to record uploaded evidence", goerr.V("incident_id", incidentID))
	}
	if err := u.logChange(ctx, incidentID, types.EmptyMitigationID,
		fmt.Sprintf("Evidence uploaded to remote storage: %s", evidenceType), "Share artifacts with responders"); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("evidence uploaded",
		"incident_id", incidentID, "item_path", itemPath, "size", len(data))
	return &evidence, nil
}

// SyncSnapshot uploads the denormalized export of the incident as
// incident-metadata.json, re-ensuring the folder first. The remote link of
// the uploaded item is returned.
func (u *UseCases) SyncSnapshot(ctx context.Context, incidentID types.IncidentID) (string, error) {
	cfg := u.settings.Snapshot()
	if err := cfg.RequireDrive(); err != nil {
		return "", err
	}

	target, err := u.repository.GetIncident(ctx, incidentID)
	if err != nil {
		return "", goerr.Wrap(err, "failed to get incident", goerr.V("incident_id", incidentID))
	}
	if target == nil {
		return "", goerr.New("incident not found", goerr.T(errs.TagNotFound), goerr.V("incident_id", incidentID))
	}

	export := incident.Export{Incident: *target}
	if export.Waves, err = u.repository.ListWaves(ctx, incidentID); err != nil {
		return "", goerr.Wrap(err, "failed to list waves")
	}
	if export.Mitigations, err = u.repository.ListMitigations(ctx, incidentID); err != nil {
		return "", goerr.Wrap(err, "failed to list mitigations")
	}
	if export.Evidence, err = u.repository.ListEvidence(ctx, incidentID); err != nil {
		return "", goerr.Wrap(err, "failed to list evidence")
	}
	if export.AuditLog, err = u.repository.ListAuditEntries(ctx, incidentID); err != nil {
		return "", goerr.Wrap(err, "failed to list audit entries")
	}
	if export.Communications, err = u.repository.ListCommunications(ctx, incidentID); err != nil {
		return "", goerr.Wrap(err, "failed to list communications")
	}

	data, err := json.Marshal(export)
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal incident export", goerr.V("incident_id", incidentID))
	}

	if _, err := u.drive.EnsureIncidentFolder(ctx, cfg.Credential, cfg.ContainerID, cfg.BasePath, incidentID); err != nil {
		return "", err
	}

	itemPath := fmt.Sprintf("%s/%s/%s", cfg.BasePath, drive.FolderName(incidentID), metadataFileName)
	item, err := u.drive.UploadBytes(ctx, cfg.Credential, cfg.ContainerID, itemPath, data, "application/json")
	if err != nil {
		return "", err
	}

	if err := u.logChange(ctx, incidentID, types.EmptyMitigationID,
		"Synced incident metadata to remote storage", "Maintain a single source of truth"); err != nil {
		return "", err
	}
	return item.WebURL, nil
}

func displayNameOf(sourcePath string) string {
	name := filepath.Base(strings.TrimSpace(sourcePath))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "artifact.bin"
	}
	return name
}

func guessContentType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt":
		return "text/plain"
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	case ".zip":
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}
