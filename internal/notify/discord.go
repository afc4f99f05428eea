package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

// discordSession is the subset of the Discord API the notifier uses.
type discordSession interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier posts events to a single Discord channel.
type DiscordNotifier struct {
	session discordSession
	channel string
}

// DiscordOpts configures a DiscordNotifier.
type DiscordOpts struct {
	Token     string
	ChannelID string

	// Session overrides the real Discord session, for tests.
	Session discordSession
}

// NewDiscord builds a Discord notifier.
func NewDiscord(opts DiscordOpts) (*DiscordNotifier, error) {
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("notify: discord channel id is required")
	}
	session := opts.Session
	if session == nil {
		if opts.Token == "" {
			return nil, fmt.Errorf("notify: discord token is required")
		}
		real, err := discordgo.New("Bot " + opts.Token)
		if err != nil {
			return nil, fmt.Errorf("notify: create discord session: %w", err)
		}
		session = real
	}
	return &DiscordNotifier{session: session, channel: opts.ChannelID}, nil
}

// Notify posts the event as an embed. Errors are logged and dropped.
func (d *DiscordNotifier) Notify(_ context.Context, ev Event) {
	embed := &discordgo.MessageEmbed{
		Title:       ev.Title,
		Description: ev.Detail,
		Footer:      &discordgo.MessageEmbedFooter{Text: ev.Kind},
	}
	if _, err := d.session.ChannelMessageSendEmbed(d.channel, embed); err != nil {
		log.Printf("notify: discord post failed: %v", err)
	}
}
