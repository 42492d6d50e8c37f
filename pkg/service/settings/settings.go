package settings

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model/errs"
)

const DefaultActorName = "Analyst"

// Settings is one coherent snapshot of external-system configuration.
type Settings struct {
	Credential    string
	ContainerID   string
	BasePath      string
	TeamID        string
	ChannelID     string
	AlertEndpoint string
	AlertAPIKey   string
	ActorName     string
}

func (x Settings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("credential.len", len(x.Credential)),
		slog.String("container-id", x.ContainerID),
		slog.String("base-path", x.BasePath),
		slog.String("team-id", x.TeamID),
		slog.String("channel-id", x.ChannelID),
		slog.String("alert-endpoint", x.AlertEndpoint),
		slog.Int("alert-api-key.len", len(x.AlertAPIKey)),
		slog.String("actor-name", x.ActorName),
	)
}

// RequireDrive fails fast when object-storage sync is not configured.
func (x Settings) RequireDrive() error {
	if strings.TrimSpace(x.Credential) == "" {
		return goerr.New("credential is not set", goerr.T(errs.TagConfiguration))
	}
	if strings.TrimSpace(x.ContainerID) == "" {
		return goerr.New("container ID is not set", goerr.T(errs.TagConfiguration))
	}
	return nil
}

// RequireMessaging fails fast when the channel destination is not configured.
func (x Settings) RequireMessaging() error {
	if strings.TrimSpace(x.Credential) == "" {
		return goerr.New("credential is not set", goerr.T(errs.TagConfiguration))
	}
	if strings.TrimSpace(x.TeamID) == "" {
		return goerr.New("team ID is not set", goerr.T(errs.TagConfiguration))
	}
	if strings.TrimSpace(x.ChannelID) == "" {
		return goerr.New("channel ID is not set", goerr.T(errs.TagConfiguration))
	}
	return nil
}

// RequireAlerting fails fast when the alerting engine is not configured.
func (x Settings) RequireAlerting() error {
	if strings.TrimSpace(x.AlertEndpoint) == "" {
		return goerr.New("alert endpoint is not set", goerr.T(errs.TagConfiguration))
	}
	if strings.TrimSpace(x.AlertAPIKey) == "" {
		return goerr.New("alert API key is not set", goerr.T(errs.TagConfiguration))
	}
	return nil
}

// Provider hands out settings snapshots. Reads are coherent: an Update never
// tears a snapshot already taken, and each new read observes the latest
// committed value.
type Provider struct {
	mu       sync.RWMutex
	settings Settings
}

func NewProvider(initial Settings) *Provider {
	normalize(&initial)
	return &Provider{settings: initial}
}

func (p *Provider) Snapshot() Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

func (p *Provider) Update(transform func(*Settings)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	transform(&p.settings)
	normalize(&p.settings)
}

func normalize(s *Settings) {
	s.BasePath = strings.Trim(strings.TrimSpace(s.BasePath), "/")
	s.TeamID = strings.TrimSpace(s.TeamID)
	s.ChannelID = strings.TrimSpace(s.ChannelID)
	s.AlertEndpoint = strings.TrimRight(strings.TrimSpace(s.AlertEndpoint), "/")
	s.ActorName = strings.TrimSpace(s.ActorName)
	if s.ActorName == "" {
		s.ActorName = DefaultActorName
	}
	if s.BasePath == "" {
		s.BasePath = "Evidence"
	}
}
