package sink

import (
	"net/url"
	"time"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/config"
	"github.com/pkg/errors"
)

// Config defines the sink endpoints of the dispatcher.
//
// Each webhook URL is optional; a sink without a URL is disabled. The URLs
// can alternatively be read from files, e.g. mounted secrets.
type Config struct {
	DiscordWebhookUrl     string `yaml:"discord_webhook_url" env:"DISCORD_WEBHOOK_URL"`
	DiscordWebhookUrlFile string `yaml:"discord_webhook_url_file" env:"DISCORD_WEBHOOK_URL_FILE"`

	TeamsWebhookUrl     string `yaml:"teams_webhook_url" env:"TEAMS_WEBHOOK_URL"`
	TeamsWebhookUrlFile string `yaml:"teams_webhook_url_file" env:"TEAMS_WEBHOOK_URL_FILE"`

	// Timeout bounds each outbound webhook call.
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT" default:"10s"`
}

// Validate checks constraints in the configuration and returns an error if they are violated.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}

	if err := config.LoadSecretFile(&c.DiscordWebhookUrl, c.DiscordWebhookUrlFile); err != nil {
		return err
	}
	if err := config.LoadSecretFile(&c.TeamsWebhookUrl, c.TeamsWebhookUrlFile); err != nil {
		return err
	}

	for name, endpoint := range map[string]string{
		discordName: c.DiscordWebhookUrl,
		teamsName:   c.TeamsWebhookUrl,
	} {
		if endpoint == "" {
			continue
		}

		parsed, err := url.Parse(endpoint)
		if err != nil {
			return errors.Wrapf(err, "invalid %s webhook URL", name)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return errors.Errorf("invalid %s webhook URL %q: scheme must be http or https", name, endpoint)
		}
	}

	return nil
}
