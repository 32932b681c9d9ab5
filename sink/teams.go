package sink

import (
	"context"
	"net/http"
	"time"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/event"
)

const teamsName = "teams"

type teamsCard struct {
	Type       string `json:"@type"`
	Context    string `json:"@context"`
	Summary    string `json:"summary"`
	ThemeColor string `json:"themeColor"`
	Title      string `json:"title"`
	Text       string `json:"text"`
}

// Teams posts notifications to a Teams-compatible webhook as a message card
// with the field block in a preformatted text block. Teams acknowledges
// webhook posts with 200 or 204.
type Teams struct {
	webhook
}

// NewTeams returns a Teams sink posting to the given webhook URL.
func NewTeams(url string, timeout time.Duration) *Teams {
	return &Teams{webhook: newWebhook(teamsName, url, timeout)}
}

func (t *Teams) Name() string {
	return teamsName
}

// Send implements the Sink interface.
func (t *Teams) Send(ctx context.Context, n *event.Notification) error {
	payload := teamsCard{
		Type:       "MessageCard",
		Context:    "https://schema.org/extensions",
		Summary:    n.Title,
		ThemeColor: n.Severity.Hex(),
		Title:      n.Title,
		Text:       "<pre>" + renderFieldBlock(n.Fields()) + "</pre>",
	}

	return t.post(ctx, payload, func(status int) bool {
		return status == http.StatusOK || status == http.StatusNoContent
	})
}
