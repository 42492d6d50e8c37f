package incident

import "fmt"

// Export is the denormalized snapshot of one incident, uploaded to the
// remote folder as incident-metadata.json.
type Export struct {
	Incident       Incident         `json:"incident"`
	Waves          []*AttackWave    `json:"waves"`
	Mitigations    []*Mitigation    `json:"mitigations"`
	Evidence       []*Evidence      `json:"evidence"`
	AuditLog       []*AuditEntry    `json:"audit_log"`
	Communications []*Communication `json:"communications"`
}

// StatusSummary renders the default HTML body for a channel status update.
func (x *Incident) StatusSummary() string {
	return fmt.Sprintf(
		"<b>Incident Update</b><br/>"+
			"<b>ID:</b> %s<br/>"+
			"<b>Service:</b> %s<br/>"+
			"<b>Severity:</b> %s<br/>"+
			"<b>Status:</b> %s<br/>"+
			"<b>Title:</b> %s<br/>"+
			"<br/>%s",
		x.ID, x.AffectedService, x.Severity, x.Status, x.Title, x.Description)
}
