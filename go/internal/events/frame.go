package events

import "github.com/openrally/courtside/go/internal/models"

// FrameKind is the explicit discriminant between a full snapshot and an
// incremental event on the wire. Clients must not guess from payload shape.
type FrameKind string

const (
	FrameKindSnapshot FrameKind = "snapshot"
	FrameKindEvent    FrameKind = "event"
)

// Frame is the unit sent to subscribed clients. Exactly one of Snapshot or
// Event is set, matching Kind.
type Frame struct {
	Kind     FrameKind        `json:"kind"`
	Snapshot *models.Snapshot `json:"snapshot,omitempty"`
	Event    *Event           `json:"event,omitempty"`
}

// SnapshotFrame wraps a full snapshot for delivery.
func SnapshotFrame(snap *models.Snapshot) Frame {
	return Frame{Kind: FrameKindSnapshot, Snapshot: snap}
}

// EventFrame wraps an incremental event for delivery.
func EventFrame(ev *Event) Frame {
	return Frame{Kind: FrameKindEvent, Event: ev}
}
