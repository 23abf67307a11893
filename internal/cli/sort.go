package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/ufc-events/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortBySource SortOrder = "source"
	SortByDate   SortOrder = "date"
	SortByName   SortOrder = "name"
)

func (o SortOrder) valid() bool {
	return o == SortBySource || o == SortByDate || o == SortByName
}

// sortEvents sorts events in place. Source order keeps scheduled events
// ahead of past ones, as extracted.
func sortEvents(events []*event.Event, order SortOrder) {
	switch order {
	case SortByDate:
		event.SortByDate(events)
	case SortByName:
		sort.SliceStable(events, func(i, j int) bool {
			a, b := strings.ToLower(events[i].Name), strings.ToLower(events[j].Name)
			if a != b {
				return a < b
			}
			// If names are equal, sort by date
			return events[i].Date.Before(events[j].Date)
		})
	}
}
