package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
	"github.com/secmon-lab/casebook/pkg/domain/model/incident"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/repository/memory"
	"github.com/secmon-lab/casebook/pkg/service/settings"
)

// UseCases is the incident orchestrator. Every mutating operation writes the
// entity change first and then appends exactly one audit entry; if the append
// fails the operation reports failure even though the entity change persisted.
type UseCases struct {
	repository interfaces.Repository
	drive      interfaces.DriveClient
	messenger  interfaces.MessengerClient
	alert      interfaces.AlertClient
	settings   *settings.Provider
}

type Option func(*UseCases)

func WithRepository(repository interfaces.Repository) Option {
	return func(u *UseCases) {
		u.repository = repository
	}
}

func WithDriveClient(drive interfaces.DriveClient) Option {
	return func(u *UseCases) {
		u.drive = drive
	}
}

func WithMessengerClient(messenger interfaces.MessengerClient) Option {
	return func(u *UseCases) {
		u.messenger = messenger
	}
}

func WithAlertClient(alert interfaces.AlertClient) Option {
	return func(u *UseCases) {
		u.alert = alert
	}
}

func WithSettings(provider *settings.Provider) Option {
	return func(u *UseCases) {
		u.settings = provider
	}
}

func New(opts ...Option) *UseCases {
	u := &UseCases{
		repository: memory.New(),
		settings:   settings.NewProvider(settings.Settings{}),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *UseCases) Settings() *settings.Provider {
	return u.settings
}

// logChange appends one audit entry stamped with the configured actor name.
// Insertion order is the causal source of truth when timestamps collide.
func (u *UseCases) logChange(ctx context.Context, incidentID types.IncidentID, mitigationID types.MitigationID, what, why string) error {
	actor := u.settings.Snapshot().ActorName
	entry := incident.NewAuditEntry(ctx, incidentID, mitigationID, actor, what, why)
	if err := u.repository.PutAuditEntry(ctx, entry); err != nil {
		return goerr.Wrap(err, "failed to append audit entry",
			goerr.V("incident_id", incidentID), goerr.V("what", what))
	}
	return nil
}
