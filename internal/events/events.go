// Package events provides the in-process notification bus used to keep
// independent views consistent after a collection write.
package events

// EventType identifies the kind of change being broadcast
type EventType string

const (
	// AssetsChanged is published after every successful ledger mutation
	AssetsChanged EventType = "assets_changed"
	// GoalsChanged is published after every successful goal mutation
	GoalsChanged EventType = "goals_changed"
	// NetWorthRecorded is published after the history recorder stores a point
	NetWorthRecorded EventType = "networth_recorded"
)

// EventData is the interface that all event data types must implement.
// This allows for type-safe event data while maintaining flexibility.
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// AssetsChangedData contains data for AssetsChanged events
type AssetsChangedData struct {
	Action  string `json:"action"` // added, stacked, patched, replaced, deleted
	AssetID string `json:"asset_id,omitempty"`
	Count   int    `json:"count"`
	Total   string `json:"total"`
}

// EventType returns the event type for AssetsChangedData
func (d *AssetsChangedData) EventType() EventType {
	return AssetsChanged
}

// GoalsChangedData contains data for GoalsChanged events
type GoalsChangedData struct {
	Action string `json:"action"`
	GoalID string `json:"goal_id,omitempty"`
	Count  int    `json:"count"`
}

// EventType returns the event type for GoalsChangedData
func (d *GoalsChangedData) EventType() EventType {
	return GoalsChanged
}

// NetWorthRecordedData contains data for NetWorthRecorded events
type NetWorthRecordedData struct {
	PointID string `json:"point_id"`
	Total   string `json:"total"`
}

// EventType returns the event type for NetWorthRecordedData
func (d *NetWorthRecordedData) EventType() EventType {
	return NetWorthRecorded
}
