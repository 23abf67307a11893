package event

import (
	"sort"
	"strconv"
	"time"
)

// Snapshot represents a collection of events at a point in time
type Snapshot struct {
	Events      map[string]*Event `json:"events"`       // keyed by Event.ID
	StableIndex map[string]string `json:"stable_index"` // StableKey → ID mapping
	UpdatedAt   string            `json:"updated_at"`   // RFC3339 timestamp
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Events:      make(map[string]*Event),
		StableIndex: make(map[string]string),
	}
}

// CreateSnapshot creates a snapshot from a list of events
func CreateSnapshot(events []*Event, updatedAt string) *Snapshot {
	snap := NewSnapshot()
	snap.UpdatedAt = updatedAt

	for _, evt := range events {
		snap.Events[evt.ID] = evt
		if evt.StableKey != "" {
			snap.StableIndex[evt.StableKey] = evt.ID
		}
	}

	return snap
}

// Change types reported by DetectChanges
const (
	ChangeNew       = "new"
	ChangeDate      = "date"
	ChangeVenue     = "venue"
	ChangeLocation  = "location"
	ChangeCancelled = "cancelled"
)

// EventChange represents a change detected in an event
type EventChange struct {
	EventID    string    `json:"event_id"`
	StableKey  string    `json:"stable_key"`
	ChangeType string    `json:"change_type"`
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
	DetectedAt time.Time `json:"detected_at"`
}

// DiffResult contains the results of comparing events against a snapshot
type DiffResult struct {
	NewEvents []*Event       `json:"new_events"`
	Changes   []*EventChange `json:"changes"`
}

// Diff compares current events against a previous snapshot. An event is new
// when its stable key is unknown to the snapshot; known events are checked
// for changed date, venue, location and cancellation. Result order follows
// the order of current.
func Diff(previous *Snapshot, current []*Event) *DiffResult {
	result := &DiffResult{
		NewEvents: make([]*Event, 0),
		Changes:   make([]*EventChange, 0),
	}

	if previous == nil {
		previous = NewSnapshot()
	}

	for _, evt := range current {
		id, known := previous.StableIndex[evt.StableKey]
		if !known {
			result.NewEvents = append(result.NewEvents, evt)
			continue
		}
		result.Changes = append(result.Changes, DetectChanges(previous.Events[id], evt)...)
	}

	return result
}

// DetectChanges compares two versions of an event and returns detected changes
func DetectChanges(previous, current *Event) []*EventChange {
	now := time.Now().UTC()
	change := func(kind, oldValue, newValue string) *EventChange {
		return &EventChange{
			EventID:    current.ID,
			StableKey:  current.StableKey,
			ChangeType: kind,
			OldValue:   oldValue,
			NewValue:   newValue,
			DetectedAt: now,
		}
	}

	if previous == nil {
		return []*EventChange{change(ChangeNew, "", current.Name)}
	}

	var changes []*EventChange
	if !previous.Date.Equal(current.Date) {
		changes = append(changes, change(ChangeDate, previous.Date.Format(DateLayout), current.Date.Format(DateLayout)))
	}
	if previous.Venue != current.Venue {
		changes = append(changes, change(ChangeVenue, previous.Venue, current.Venue))
	}
	if previous.Location != current.Location {
		changes = append(changes, change(ChangeLocation, previous.Location, current.Location))
	}
	if previous.IsCancelled != current.IsCancelled {
		changes = append(changes, change(ChangeCancelled,
			strconv.FormatBool(previous.IsCancelled), strconv.FormatBool(current.IsCancelled)))
	}

	return changes
}

// SortByDate sorts events by date, keeping source order for equal dates
func SortByDate(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}
