package config

import (
	"log/slog"

	"github.com/secmon-lab/casebook/pkg/service/settings"
	"github.com/urfave/cli/v3"
)

// Remote holds external-system configuration: the drive API for evidence
// sync, the messaging API for channel updates, and the alerting engine.
type Remote struct {
	driveAPIURL     string
	messagingAPIURL string
	credential      string
	containerID     string
	basePath        string
	teamID          string
	channelID       string
	alertEndpoint   string
	alertAPIKey     string
	actorName       string
}

func (x *Remote) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "drive-api-url",
			Usage:       "Base URL of the drive API for evidence sync",
			Category:    "Remote",
			Sources:     cli.EnvVars("CASEBOOK_DRIVE_API_URL"),
			Destination: &x.driveAPIURL,
		},
		&cli.StringFlag{
			Name:        "messaging-api-url",
			Usage:       "Base URL of the messaging API for channel updates",
			Category:    "Remote",
			Sources:     cli.EnvVars("CASEBOOK_MESSAGING_API_URL"),
			Destination: &x.messagingAPIURL,
		},
		&cli.StringFlag{
			Name:        "credential",
			Usage:       "Access token for the drive and messaging APIs",
			Category:    "Remote",
			Sources:     cli.EnvVars("CASEBOOK_CREDENTIAL"),
			Destination: &x.credential,
		},
		&cli.StringFlag{
			Name:        "container-id",
			Usage:       "Drive container ID for evidence upload",
			Category:    "Remote",
			Sources:     cli.EnvVars("CASEBOOK_CONTAINER_ID"),
			Destination: &x.containerID,
		},
		&cli.StringFlag{
			Name:        "base-path",
			Usage:       "Base folder path in the drive container",
			Category:    "Remote",
			Sources:     cli.EnvVars("CASEBOOK_BASE_PATH"),
			Value:       "Evidence",
			Destination: &x.basePath,
		},
		&cli.StringFlag{
			Name:        "team-id",
			Usage:       "Team ID for status updates",
			Category:    "Remote",
			Sources:     cli.EnvVars("CASEBOOK_TEAM_ID"),
			Destination: &x.teamID,
		},
		&cli.StringFlag{
			Name:        "channel-id",
			Usage:       "Channel ID for status updates",
			Category:    "Remote",
			Sources:     cli.EnvVars("CASEBOOK_CHANNEL_ID"),
			Destination: &x.channelID,
		},
		&cli.StringFlag{
			Name:        "alert-endpoint",
			Usage:       "Base URL of the alerting engine",
			Category:    "Remote",
			Sources:     cli.EnvVars("CASEBOOK_ALERT_ENDPOINT"),
			Destination: &x.alertEndpoint,
		},
		&cli.StringFlag{
			Name:        "alert-api-key",
			Usage:       "API key for the alerting engine",
			Category:    "Remote",
			Sources:     cli.EnvVars("CASEBOOK_ALERT_API_KEY"),
			Destination: &x.alertAPIKey,
		},
		&cli.StringFlag{
			Name:        "actor-name",
			Usage:       "Actor name recorded in audit entries",
			Category:    "Remote",
			Sources:     cli.EnvVars("CASEBOOK_ACTOR_NAME"),
			Value:       settings.DefaultActorName,
			Destination: &x.actorName,
		},
	}
}

func (x Remote) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("drive-api-url", x.driveAPIURL),
		slog.String("messaging-api-url", x.messagingAPIURL),
		slog.Int("credential.len", len(x.credential)),
		slog.String("container-id", x.containerID),
		slog.String("base-path", x.basePath),
		slog.String("team-id", x.teamID),
		slog.String("channel-id", x.channelID),
		slog.String("alert-endpoint", x.alertEndpoint),
		slog.Int("alert-api-key.len", len(x.alertAPIKey)),
		slog.String("actor-name", x.actorName),
	)
}

func (x *Remote) DriveAPIURL() string {
	return x.driveAPIURL
}

func (x *Remote) MessagingAPIURL() string {
	return x.messagingAPIURL
}

// Configure builds the settings provider backing the orchestrator.
func (x *Remote) Configure() *settings.Provider {
	return settings.NewProvider(settings.Settings{
		Credential:    x.credential,
		ContainerID:   x.containerID,
		BasePath:      x.basePath,
		TeamID:        x.teamID,
		ChannelID:     x.channelID,
		AlertEndpoint: x.alertEndpoint,
		AlertAPIKey:   x.alertAPIKey,
		ActorName:     x.actorName,
	})
}
