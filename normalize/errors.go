package normalize

import (
	"fmt"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/envelope"
)

// MalformedEventError reports a payload that matched a variant's shape but
// is missing a field that variant requires.
type MalformedEventError struct {
	Variant envelope.Variant
	Field   string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed %s event: missing field %q", e.Variant, e.Field)
}

func malformed(v envelope.Variant, field string) error {
	return &MalformedEventError{Variant: v, Field: field}
}
