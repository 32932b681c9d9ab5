package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/envelope"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/event"
	"github.com/pkg/errors"
)

const (
	mailTypeBounce    = "Bounce"
	mailTypeComplaint = "Complaint"

	// recipientsNull is rendered when a recipients list is absent.
	recipientsNull = "Null"
)

type mailMessage struct {
	NotificationType string `json:"notificationType"`
	Mail             struct {
		Source string `json:"source"`
	} `json:"mail"`
	Bounce *struct {
		BouncedRecipients json.RawMessage `json:"bouncedRecipients"`
	} `json:"bounce"`
	Complaint *struct {
		ComplainedRecipients json.RawMessage `json:"complainedRecipients"`
	} `json:"complaint"`
	Delivery *struct {
		Recipients json.RawMessage `json:"recipients"`
	} `json:"delivery"`
}

// mail normalizes a mail delivery outcome notification, dispatching on its
// notification type. Anything that is neither a bounce nor a complaint is
// treated as a delivery.
func (n *Normalizer) mail(p envelope.Payload) (*event.Notification, error) {
	if !p.Has("mail") {
		return nil, malformed(envelope.VariantMail, "mail")
	}

	var msg mailMessage
	if err := json.Unmarshal([]byte(p.Text), &msg); err != nil {
		return nil, errors.Wrap(err, "can't decode mail payload")
	}

	level := msg.NotificationType

	ev := event.New(
		fmt.Sprintf("%s - %s | %s", level, msg.Mail.Source, p.Timestamp),
		event.SeverityFromToken(level),
	)
	ev.AppendField("Level", level)
	ev.AppendField("Region", n.runtime.Region())
	ev.AppendField("Source", msg.Mail.Source)

	switch level {
	case mailTypeBounce:
		var recipients json.RawMessage
		if msg.Bounce != nil {
			recipients = msg.Bounce.BouncedRecipients
		}
		ev.AppendField("Bounced Recipients", prettyOrNull(recipients))
	case mailTypeComplaint:
		var recipients json.RawMessage
		if msg.Complaint != nil {
			recipients = msg.Complaint.ComplainedRecipients
		}
		ev.AppendField("Complained Recipients", prettyOrNull(recipients))
	default:
		var recipients json.RawMessage
		if msg.Delivery != nil {
			recipients = msg.Delivery.Recipients
		}
		ev.AppendField("Delivery Recipients", prettyOrNull(recipients))
	}

	return ev, nil
}

// prettyOrNull re-renders a raw JSON value indented for display, or the
// literal "Null" sentinel when the value is absent or null.
func prettyOrNull(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return recipientsNull
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return string(raw)
	}

	pretty, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return string(raw)
	}

	return string(pretty)
}
