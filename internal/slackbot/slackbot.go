package slackbot

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/slack-go/slack"

	"github.com/pep299/update-simplifier/internal/usage"
)

// Client posts usage reports to a Slack channel
type Client struct {
	channel    string
	api        *slack.Client
	httpClient *http.Client
}

// NewClient creates a new Slack client. apiURL overrides the Slack API root when set.
func NewClient(botToken, channel, apiURL string) *Client {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	opts := []slack.Option{slack.OptionHTTPClient(httpClient)}
	if apiURL != "" {
		opts = append(opts, slack.OptionAPIURL(strings.TrimRight(apiURL, "/")+"/"))
	}

	return &Client{
		channel:    channel,
		api:        slack.New(botToken, opts...),
		httpClient: httpClient,
	}
}

// Write posts report as one message. It satisfies usage.Sink.
func (c *Client) Write(ctx context.Context, report usage.Report) error {
	_, _, err := c.api.PostMessageContext(ctx, c.channel,
		slack.MsgOptionText(FormatReport(report), false),
		slack.MsgOptionUsername("Update Simplifier"),
		slack.MsgOptionIconEmoji(":bar_chart:"),
	)
	if err != nil {
		return fmt.Errorf("posting usage report to %s: %w", c.channel, err)
	}
	return nil
}

// FormatReport renders report as Slack mrkdwn
func FormatReport(report usage.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Model usage* `%s`\n", report.Model)
	fmt.Fprintf(&b, "%s - %s UTC\n",
		report.Since.UTC().Format("2006-01-02 15:04"),
		report.Until.UTC().Format("2006-01-02 15:04"))

	for _, op := range report.Operations {
		fmt.Fprintf(&b, "\n• *%s*: %d calls (%d failed), %d prompt / %d completion tokens",
			op.Operation, op.Calls, op.Failures, op.PromptTokens, op.CompletionTokens)
	}
	return b.String()
}
