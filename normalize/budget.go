package normalize

import (
	"fmt"
	"strings"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/envelope"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/event"
)

const budgetDefault = "Unknown"

// budget normalizes a plain-text budget notification.
//
// The text is parsed line by line: lines containing a colon are split at the
// first colon into trimmed key/value pairs, a line beginning with
// "AWS Account" yields the account id as its last token. Missing keys fall
// back to "Unknown". There is no severity token in a budget notice, so the
// severity is always red.
func (n *Normalizer) budget(p envelope.Payload) *event.Notification {
	parsed := make(map[string]string)
	accountID := budgetDefault

	for _, line := range strings.Split(p.Text, "\n") {
		if key, value, found := strings.Cut(line, ":"); found {
			parsed[strings.TrimSpace(key)] = strings.TrimSpace(value)
		} else if strings.HasPrefix(line, "AWS Account") {
			if tokens := strings.Fields(line); len(tokens) > 0 {
				accountID = tokens[len(tokens)-1]
			}
		}
	}

	lookup := func(key string) string {
		if value, ok := parsed[key]; ok {
			return value
		}
		return budgetDefault
	}

	budgetType := lookup("Budget Type")

	ev := event.New(fmt.Sprintf("%s - BUDGET | %s", budgetType, p.Timestamp), event.SeverityRed)
	ev.AppendField("Level", budgetType)
	ev.AppendField("Budget", lookup("Budget Name"))
	ev.AppendField("AccountID", accountID)
	ev.AppendField("Budgeted Amount", lookup("Budgeted Amount"))
	ev.AppendField("Alert Type", lookup("Alert Type"))
	ev.AppendField("Alert Threshold", lookup("Alert Threshold"))
	ev.AppendField("Actual Amount", lookup("ACTUAL Amount"))

	return ev
}
