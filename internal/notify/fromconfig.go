package notify

import (
	"github.com/gigbridge/gigbridge/internal/config"
)

// FromConfig assembles a Notifier from the configured backends. With
// no tokens set it returns Nop.
func FromConfig(cfg config.NotifyConfig) (Notifier, error) {
	var multi Multi
	if cfg.Slack.Token != "" {
		s, err := NewSlack(SlackOpts{Token: cfg.Slack.Token, Channel: cfg.Slack.Channel})
		if err != nil {
			return nil, err
		}
		multi = append(multi, s)
	}
	if cfg.Discord.Token != "" {
		d, err := NewDiscord(DiscordOpts{Token: cfg.Discord.Token, ChannelID: cfg.Discord.ChannelID})
		if err != nil {
			return nil, err
		}
		multi = append(multi, d)
	}
	if len(multi) == 0 {
		return Nop{}, nil
	}
	return multi, nil
}
