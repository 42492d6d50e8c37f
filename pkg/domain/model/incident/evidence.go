package incident

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/utils/clock"
)

// Evidence is a preserved artifact tied to an incident. ContentHash is the
// SHA-256 of the artifact bytes computed before upload; RemoteLink is set
// only after a successful remote sync.
type Evidence struct {
	ID          types.EvidenceID   `json:"id"`
	IncidentID  types.IncidentID   `json:"incident_id"`
	WaveID      types.WaveID       `json:"wave_id,omitempty"`
	Type        types.EvidenceType `json:"type"`
	CollectedAt types.Time         `json:"collected_at"`
	CollectedBy string             `json:"collected_by"`
	LocalRef    string             `json:"local_ref"`
	RemoteLink  string             `json:"remote_link,omitempty"`
	ContentHash string             `json:"content_hash,omitempty"`
}

func NewEvidence(ctx context.Context, incidentID types.IncidentID, evidenceType types.EvidenceType, localRef, collectedBy string) Evidence {
	return Evidence{
		ID:          types.NewEvidenceID(),
		IncidentID:  incidentID,
		Type:        evidenceType,
		CollectedAt: types.NewTime(clock.Now(ctx)),
		CollectedBy: strings.TrimSpace(collectedBy),
		LocalRef:    localRef,
	}
}

func (x *Evidence) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid evidence ID")
	}
	if err := x.IncidentID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid incident ID of evidence")
	}
	if x.WaveID != types.EmptyWaveID {
		if err := x.WaveID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid wave ID of evidence")
		}
	}
	if err := x.Type.Validate(); err != nil {
		return goerr.Wrap(err, "invalid evidence type")
	}
	if x.LocalRef == "" {
		return goerr.New("evidence local ref is required")
	}
	return nil
}

// ContentHash returns the hex SHA-256 digest of artifact bytes.
func ContentHash(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}
