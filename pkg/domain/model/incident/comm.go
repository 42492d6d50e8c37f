package incident

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/utils/clock"
)

// Communication records one outbound message about the incident.
type Communication struct {
	ID         types.CommID      `json:"id"`
	IncidentID types.IncidentID  `json:"incident_id"`
	Channel    types.CommChannel `json:"channel"`
	SentAt     types.Time        `json:"sent_at"`
	SentBy     string            `json:"sent_by"`
	Subject    string            `json:"subject,omitempty"`
	Body       string            `json:"body"`
	RemoteLink string            `json:"remote_link,omitempty"`
}

func NewCommunication(ctx context.Context, incidentID types.IncidentID, channel types.CommChannel, sentBy, body string) Communication {
	return Communication{
		ID:         types.NewCommID(),
		IncidentID: incidentID,
		Channel:    channel,
		SentAt:     types.NewTime(clock.Now(ctx)),
		SentBy:     strings.TrimSpace(sentBy),
		Body:       body,
	}
}

func (x *Communication) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid communication ID")
	}
	if err := x.IncidentID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid incident ID of communication")
	}
	if err := x.Channel.Validate(); err != nil {
		return goerr.Wrap(err, "invalid communication channel")
	}
	if x.Body == "" {
		return goerr.New("communication body is required")
	}
	return nil
}
