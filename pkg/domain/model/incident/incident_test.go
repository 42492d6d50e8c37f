package incident_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casebook/pkg/domain/model/incident"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/utils/clock"
)

func fixedCtx(t time.Time) context.Context {
	return clock.With(context.Background(), func() time.Time { return t })
}

func TestNewIncidentDefaults(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	inc := incident.New(fixedCtx(now), "Volumetric attack", "Public API", "sustained flood", "")

	gt.NoError(t, inc.Validate())
	gt.Equal(t, inc.Status, types.IncidentStatusDetected)
	gt.Equal(t, inc.Severity, types.SeverityHigh)
	gt.True(t, inc.StartTime.Equal(now))
	gt.Nil(t, inc.EndTime)
}

func TestIncidentStatusTransition(t *testing.T) {
	t0 := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	inc := incident.New(fixedCtx(t0), "Attack", "Public API", "", types.SeverityCritical)

	t.Run("non-closed transition keeps endTime nil", func(t *testing.T) {
		active := inc.WithStatus(fixedCtx(t0.Add(time.Hour)), types.IncidentStatusActive)
		gt.Equal(t, active.Status, types.IncidentStatusActive)
		gt.Nil(t, active.EndTime)
	})

	t.Run("closing stamps endTime", func(t *testing.T) {
		closeAt := t0.Add(2 * time.Hour)
		closed := inc.WithStatus(fixedCtx(closeAt), types.IncidentStatusClosed)
		gt.Equal(t, closed.Status, types.IncidentStatusClosed)
		gt.NotNil(t, closed.EndTime)
		gt.True(t, closed.EndTime.Equal(closeAt))
	})

	t.Run("endTime survives a later non-closed transition", func(t *testing.T) {
		closed := inc.WithStatus(fixedCtx(t0.Add(2*time.Hour)), types.IncidentStatusClosed)
		reopened := closed.WithStatus(fixedCtx(t0.Add(3*time.Hour)), types.IncidentStatusActive)
		gt.NotNil(t, reopened.EndTime)
		gt.True(t, reopened.EndTime.Equal(t0.Add(2*time.Hour)))
	})
}

func TestIncidentValidate(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	t.Run("missing title", func(t *testing.T) {
		inc := incident.New(fixedCtx(now), "", "svc", "", types.SeverityLow)
		gt.Error(t, inc.Validate())
	})

	t.Run("endTime before startTime", func(t *testing.T) {
		inc := incident.New(fixedCtx(now), "Attack", "svc", "", types.SeverityLow)
		before := types.NewTime(now.Add(-time.Hour))
		inc.EndTime = &before
		gt.Error(t, inc.Validate())
	})
}

func TestNewAttackWave(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	wave := incident.NewAttackWave(fixedCtx(now), types.NewIncidentID(), 50000, "/login", "burst")

	gt.NoError(t, wave.Validate())
	gt.Equal(t, wave.PeakRequestRate, int64(50000))
	gt.True(t, wave.StartTime.Equal(now))

	wave.PeakRequestRate = -1
	gt.Error(t, wave.Validate())
}

func TestMitigationImplementedAt(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	incidentID := types.NewIncidentID()

	t.Run("implemented stamps timestamp", func(t *testing.T) {
		m := incident.NewMitigation(fixedCtx(now), incidentID, types.MitigationTypeRateLimit,
			"throttle /login", types.MitigationStatusImplemented, "stop the flood", types.EmptyWaveID, "noc")
		gt.NoError(t, m.Validate())
		gt.NotNil(t, m.ImplementedAt)
		gt.True(t, m.ImplementedAt.Equal(now))
	})

	t.Run("planned has no timestamp", func(t *testing.T) {
		m := incident.NewMitigation(fixedCtx(now), incidentID, types.MitigationTypeGeoBlock,
			"block region", types.MitigationStatusPlanned, "reduce noise", types.EmptyWaveID, "noc")
		gt.NoError(t, m.Validate())
		gt.Nil(t, m.ImplementedAt)
	})

	t.Run("timestamp without implemented status is rejected", func(t *testing.T) {
		m := incident.NewMitigation(fixedCtx(now), incidentID, types.MitigationTypeGeoBlock,
			"block region", types.MitigationStatusPlanned, "reduce noise", types.EmptyWaveID, "noc")
		ts := types.NewTime(now)
		m.ImplementedAt = &ts
		gt.Error(t, m.Validate())
	})

	t.Run("implemented status without timestamp is rejected", func(t *testing.T) {
		m := incident.NewMitigation(fixedCtx(now), incidentID, types.MitigationTypeGeoBlock,
			"block region", types.MitigationStatusImplemented, "reduce noise", types.EmptyWaveID, "noc")
		m.ImplementedAt = nil
		gt.Error(t, m.Validate())
	})
}

func TestEvidenceContentHash(t *testing.T) {
	hash := incident.ContentHash([]byte("hello"))
	gt.Equal(t, hash, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824")
	gt.Equal(t, len(incident.ContentHash(nil)), 64)
}

func TestAuditEntryValidate(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	entry := incident.NewAuditEntry(fixedCtx(now), types.NewIncidentID(), types.EmptyMitigationID,
		"Analyst", "Incident created", "triage")
	gt.NoError(t, entry.Validate())

	entry.What = ""
	gt.Error(t, entry.Validate())
}

func TestStatusSummary(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	inc := incident.New(fixedCtx(now), "Volumetric attack", "Public API", "sustained flood", types.SeverityHigh)

	html := inc.StatusSummary()
	gt.S(t, html).Contains("<b>Incident Update</b>")
	gt.S(t, html).Contains(inc.ID.String())
	gt.S(t, html).Contains("Public API")
	gt.S(t, html).Contains("HIGH")
	gt.S(t, html).Contains("DETECTED")
	gt.S(t, html).Contains("sustained flood")
}
