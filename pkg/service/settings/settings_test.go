package settings_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casebook/pkg/domain/model/errs"
	"github.com/secmon-lab/casebook/pkg/service/settings"
)

func TestProviderNormalizes(t *testing.T) {
	p := settings.NewProvider(settings.Settings{
		BasePath:      "/Shared/Evidence/",
		AlertEndpoint: "https://kibana.example.com/",
	})

	s := p.Snapshot()
	gt.Equal(t, s.BasePath, "Shared/Evidence")
	gt.Equal(t, s.AlertEndpoint, "https://kibana.example.com")
	gt.Equal(t, s.ActorName, settings.DefaultActorName)
}

func TestProviderDefaults(t *testing.T) {
	p := settings.NewProvider(settings.Settings{})
	s := p.Snapshot()
	gt.Equal(t, s.BasePath, "Evidence")
	gt.Equal(t, s.ActorName, "Analyst")
}

func TestProviderUpdate(t *testing.T) {
	p := settings.NewProvider(settings.Settings{})
	before := p.Snapshot()

	p.Update(func(s *settings.Settings) {
		s.Credential = "token"
		s.ActorName = ""
	})

	// Earlier snapshot is unaffected; new reads see the update.
	gt.Equal(t, before.Credential, "")
	after := p.Snapshot()
	gt.Equal(t, after.Credential, "token")
	gt.Equal(t, after.ActorName, settings.DefaultActorName)
}

func TestRequireHelpers(t *testing.T) {
	t.Run("drive", func(t *testing.T) {
		s := settings.Settings{}
		err := s.RequireDrive()
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, errs.TagConfiguration))

		s.Credential = "token"
		gt.Error(t, s.RequireDrive())

		s.ContainerID = "drive-1"
		gt.NoError(t, s.RequireDrive())
	})

	t.Run("messaging", func(t *testing.T) {
		s := settings.Settings{Credential: "token", TeamID: "team-1"}
		err := s.RequireMessaging()
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, errs.TagConfiguration))

		s.ChannelID = "channel-1"
		gt.NoError(t, s.RequireMessaging())
	})

	t.Run("alerting", func(t *testing.T) {
		s := settings.Settings{AlertEndpoint: "https://kibana.example.com"}
		err := s.RequireAlerting()
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, errs.TagConfiguration))

		s.AlertAPIKey = "key"
		gt.NoError(t, s.RequireAlerting())
	})
}
