package entity

import "strings"

// Destination is where a passcode is delivered: a single login ID or a batch
// of them. The engine always delivers to the primary; the rest ride along
// for audit.
type Destination struct {
	ids []string
}

// NewDestination builds a single-recipient destination.
func NewDestination(loginID string) Destination {
	return Destination{ids: []string{loginID}}
}

// NewBatchDestination builds a multi-recipient destination. Empty entries
// are dropped.
func NewBatchDestination(loginIDs []string) Destination {
	ids := make([]string, 0, len(loginIDs))
	for _, id := range loginIDs {
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return Destination{ids: ids}
}

// Primary returns the delivery target, or "" for an empty destination.
func (d Destination) Primary() string {
	if len(d.ids) == 0 {
		return ""
	}
	return d.ids[0]
}

// IsEmpty reports whether the destination has no recipients.
func (d Destination) IsEmpty() bool {
	return len(d.ids) == 0
}

// String renders the destination for storage, comma-separated.
func (d Destination) String() string {
	return strings.Join(d.ids, ",")
}

// DestinationFromString parses the stored comma-separated form.
func DestinationFromString(s string) Destination {
	if s == "" {
		return Destination{}
	}
	return NewBatchDestination(strings.Split(s, ","))
}
