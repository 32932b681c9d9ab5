// Package event defines the canonical notification record produced by the
// normalizers and consumed by the sinks.
package event

// Field is a single key/value line of a notification body.
type Field struct {
	Key   string
	Value string
}

// Notification is the canonical, sink-independent record describing one
// inbound monitoring event. It is the only artifact passed downstream.
//
// Fields are ordered and keys are unique: the order in which fields are
// appended is the order in which the sinks render them.
type Notification struct {
	Title    string
	Severity Severity

	fields []Field
}

// New returns a Notification with the given title and severity and no fields.
func New(title string, severity Severity) *Notification {
	return &Notification{Title: title, Severity: severity}
}

// AppendField adds a key/value pair to the end of the field list.
// Appending an existing key replaces its value but keeps its original
// position, so the field list never contains duplicate keys.
func (n *Notification) AppendField(key, value string) {
	for i, f := range n.fields {
		if f.Key == key {
			n.fields[i].Value = value
			return
		}
	}

	n.fields = append(n.fields, Field{Key: key, Value: value})
}

// Fields returns the ordered field list.
func (n *Notification) Fields() []Field {
	return n.fields
}

// Field returns the value for key and whether the key is present.
func (n *Notification) Field(key string) (string, bool) {
	for _, f := range n.fields {
		if f.Key == key {
			return f.Value, true
		}
	}

	return "", false
}
