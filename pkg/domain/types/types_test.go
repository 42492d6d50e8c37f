package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

func TestIncidentID(t *testing.T) {
	id := types.NewIncidentID()
	gt.NoError(t, id.Validate())
	gt.Error(t, types.EmptyIncidentID.Validate())
	gt.Error(t, types.IncidentID("not-a-uuid").Validate())
}

func TestIncidentStatusValidate(t *testing.T) {
	for _, status := range []types.IncidentStatus{
		types.IncidentStatusDetected,
		types.IncidentStatusActive,
		types.IncidentStatusStabilized,
		types.IncidentStatusClosed,
	} {
		gt.NoError(t, status.Validate())
	}
	gt.Error(t, types.IncidentStatus("OPEN").Validate())
	gt.Error(t, types.IncidentStatus("detected").Validate())
}

func TestSeverityValidate(t *testing.T) {
	for _, severity := range []types.Severity{
		types.SeverityLow, types.SeverityMedium, types.SeverityHigh, types.SeverityCritical,
	} {
		gt.NoError(t, severity.Validate())
	}
	gt.Error(t, types.Severity("URGENT").Validate())
}

func TestMitigationEnums(t *testing.T) {
	gt.NoError(t, types.MitigationTypeRateLimit.Validate())
	gt.NoError(t, types.MitigationStatusImplemented.Validate())
	gt.Error(t, types.MitigationType("FIREWALL").Validate())
	gt.Error(t, types.MitigationStatus("DONE").Validate())
}

func TestEvidenceTypeValidate(t *testing.T) {
	gt.NoError(t, types.EvidenceTypeIPList.Validate())
	gt.NoError(t, types.EvidenceTypePcap.Validate())
	gt.Error(t, types.EvidenceType("VIDEO").Validate())
}

func TestCommChannelValidate(t *testing.T) {
	gt.NoError(t, types.CommChannelChat.Validate())
	gt.NoError(t, types.CommChannelEmail.Validate())
	gt.Error(t, types.CommChannel("SMS").Validate())
}
