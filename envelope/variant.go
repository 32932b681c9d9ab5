package envelope

import (
	"fmt"
	"strings"
)

// Variant identifies the source shape of an unwrapped payload.
type Variant uint8

const (
	VariantUnknown Variant = iota
	VariantAlarm
	VariantEventBridge
	VariantBudget
	VariantMail
)

// variantNames holds the string representation of each Variant.
var variantNames = map[Variant]string{
	VariantUnknown:     "unknown",
	VariantAlarm:       "alarm",
	VariantEventBridge: "eventbridge",
	VariantBudget:      "budget",
	VariantMail:        "mail",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}

	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// Classify selects the variant for a payload by structural dispatch,
// evaluated in precedence order with the first match winning.
// It never fails; VariantUnknown is the universal fallback.
func Classify(p Payload) Variant {
	switch {
	case p.Has("AlarmName"):
		return VariantAlarm
	case p.Has("detail"):
		return VariantEventBridge
	case p.Object == nil && strings.Contains(p.Text, "AWS Budget Notification"):
		return VariantBudget
	case p.Has("notificationType"):
		return VariantMail
	default:
		return VariantUnknown
	}
}
