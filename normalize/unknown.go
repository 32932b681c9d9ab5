package normalize

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/envelope"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/event"
)

const levelUnknown = "UNKNOWN"

// unknown is the fallback for payloads that match no known shape. The
// account id is derived from the process' own identity, not from the
// payload, and the entire payload is preserved as the reason.
func (n *Normalizer) unknown(ctx context.Context, p envelope.Payload) *event.Notification {
	region := n.runtime.Region()

	var reason string
	if p.Object != nil {
		if r, ok := p.Object["Region"].(string); ok {
			region = r
		}

		if pretty, err := json.MarshalIndent(p.Object, "", "  "); err == nil {
			reason = string(pretty)
		} else {
			reason = p.Text
		}
	} else {
		reason = p.Text
	}

	ev := event.New("UNKNOWN MESSAGE | "+p.Timestamp, event.SeverityRed)
	ev.AppendField("Level", levelUnknown)
	ev.AppendField("Region", region)
	ev.AppendField("AccountID", accountFromIdentity(n.runtime.Identity(ctx)))
	ev.AppendField("Reason", reason)

	return ev
}

// accountFromIdentity extracts the account id from a colon-delimited
// execution identity, e.g. arn:aws:lambda:<region>:<account>:function:<name>.
func accountFromIdentity(identity string) string {
	parts := strings.Split(identity, ":")
	if len(parts) < 5 {
		return tagDefault
	}

	return parts[4]
}
