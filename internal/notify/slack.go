package notify

import (
	"context"
	"fmt"
	"log"

	slackapi "github.com/slack-go/slack"
)

// slackClient is the subset of the Slack API the notifier uses,
// abstracted so tests can substitute a mock.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// SlackNotifier posts events to a single Slack channel.
type SlackNotifier struct {
	client  slackClient
	channel string
}

// SlackOpts configures a SlackNotifier.
type SlackOpts struct {
	Token   string
	Channel string

	// Client overrides the real Slack client, for tests.
	Client slackClient
}

// NewSlack builds a Slack notifier.
func NewSlack(opts SlackOpts) (*SlackNotifier, error) {
	if opts.Channel == "" {
		return nil, fmt.Errorf("notify: slack channel is required")
	}
	client := opts.Client
	if client == nil {
		if opts.Token == "" {
			return nil, fmt.Errorf("notify: slack token is required")
		}
		client = slackapi.New(opts.Token)
	}
	return &SlackNotifier{client: client, channel: opts.Channel}, nil
}

// Notify posts the event as an attachment. Errors are logged and
// dropped.
func (s *SlackNotifier) Notify(ctx context.Context, ev Event) {
	attachment := slackapi.Attachment{
		Title:  ev.Title,
		Text:   ev.Detail,
		Footer: ev.Kind,
	}
	_, _, err := s.client.PostMessageContext(ctx, s.channel, slackapi.MsgOptionAttachments(attachment))
	if err != nil {
		log.Printf("notify: slack post failed: %v", err)
	}
}
