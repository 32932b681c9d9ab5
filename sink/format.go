package sink

import (
	"strings"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/event"
)

// padColumn is the column the field values are aligned to.
const padColumn = 21

// renderFieldBlock renders the fields as fixed-width "key: value" lines,
// with every value left-padded to a common column. Keys longer than the pad
// column are followed by their value directly.
func renderFieldBlock(fields []event.Field) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		padding := padColumn - len(f.Key)
		if padding < 0 {
			padding = 0
		}
		lines = append(lines, f.Key+":"+strings.Repeat(" ", padding)+f.Value)
	}

	return strings.Join(lines, "\n")
}
