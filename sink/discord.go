package sink

import (
	"context"
	"net/http"
	"time"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/event"
)

const discordName = "discord"

type discordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

// Discord posts notifications to a Discord-compatible webhook as a single
// embed with the field block in a code fence. Discord acknowledges webhook
// posts with 204 No Content.
type Discord struct {
	webhook
}

// NewDiscord returns a Discord sink posting to the given webhook URL.
func NewDiscord(url string, timeout time.Duration) *Discord {
	return &Discord{webhook: newWebhook(discordName, url, timeout)}
}

func (d *Discord) Name() string {
	return discordName
}

// Send implements the Sink interface.
func (d *Discord) Send(ctx context.Context, n *event.Notification) error {
	payload := discordPayload{
		Embeds: []discordEmbed{{
			Title:       n.Title,
			Description: "```\n" + renderFieldBlock(n.Fields()) + "\n```",
			Color:       n.Severity.Color(),
		}},
	}

	return d.post(ctx, payload, func(status int) bool {
		return status == http.StatusNoContent
	})
}
