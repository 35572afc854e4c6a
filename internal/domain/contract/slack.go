package contract

import "github.com/slack-go/slack"

// SlackClient is the subset of *slack.Client used to post run summaries.
type SlackClient interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}
