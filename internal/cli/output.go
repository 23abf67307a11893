package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pfrederiksen/ufc-events/internal/calendar"
	"github.com/pfrederiksen/ufc-events/internal/event"
	"github.com/pfrederiksen/ufc-events/internal/logger"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatICS  OutputFormat = "ics"
)

func (f OutputFormat) valid() bool {
	return f == FormatText || f == FormatJSON || f == FormatICS
}

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt  time.Time            `json:"checked_at"`
	Source     string               `json:"source,omitempty"`
	Events     []*event.Event       `json:"events"`
	EventCount int                  `json:"event_count"`
	Changes    []*event.EventChange `json:"changes,omitempty"`
	NewOnly    bool                 `json:"new_only,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	case FormatICS:
		_, err := io.WriteString(w, calendar.GenerateICS(result.Events))
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	label := "events"
	if result.NewOnly {
		label = "new events"
	}

	if len(result.Events) == 0 {
		fmt.Fprintf(w, "No %s found.\n", label)
	}

	now := time.Now().UTC()
	for _, evt := range result.Events {
		fmt.Fprintf(w, "%s (%s)\n", evt.Name, when(evt, now))
		if place := joinPlace(evt.Venue, evt.Location); place != "" {
			fmt.Fprintf(w, "  %s\n", place)
		}
		if evt.IsCancelled {
			fmt.Fprintln(w, "  CANCELLED")
		}
		if evt.AmbiguousFightCard {
			fmt.Fprintln(w, "  Fight card could not be determined")
		}
		for _, section := range evt.FightCard {
			fmt.Fprintf(w, "  %s: %d fights\n", section.Title, len(section.Fights))
			if !verbose {
				continue
			}
			for _, f := range section.Fights {
				fmt.Fprintf(w, "    %s\n", describeFight(f))
			}
		}
		if verbose {
			for _, award := range evt.BonusAwards {
				fmt.Fprintf(w, "  Bonus: %s\n", award)
			}
			fmt.Fprintf(w, "  ID: %s\n", evt.ID)
			if evt.DetailURL != "" {
				fmt.Fprintf(w, "  URL: %s\n", evt.DetailURL)
			}
		}
	}

	for _, change := range result.Changes {
		fmt.Fprintf(w, "CHANGED (%s): %s: %q -> %q\n", change.ChangeType, change.EventID, change.OldValue, change.NewValue)
	}

	if len(result.Events) > 0 {
		fmt.Fprintf(w, "\nTotal: %d %s\n", len(result.Events), label)
	}
	return nil
}

// when renders the event date relative to now
func when(evt *event.Event, now time.Time) string {
	date := evt.Date.Format(event.DateLayout)
	if evt.IsPast(now) {
		return date
	}
	switch days := evt.DaysUntil(now); days {
	case 0:
		return date + ", today"
	case 1:
		return date + ", tomorrow"
	default:
		return fmt.Sprintf("%s, in %d days", date, days)
	}
}

func joinPlace(venue, location string) string {
	switch {
	case venue == "":
		return location
	case location == "":
		return venue
	default:
		return venue + ", " + location
	}
}

func describeFight(f event.Fight) string {
	var b strings.Builder
	if f.WeightClass != "" {
		fmt.Fprintf(&b, "%s: ", f.WeightClass)
	}
	fmt.Fprintf(&b, "%s vs. %s", f.FighterOne, f.FighterTwo)
	if f.Method != "" {
		fmt.Fprintf(&b, " (%s", f.Method)
		if f.Round != "" {
			fmt.Fprintf(&b, ", R%s %s", f.Round, f.Time)
		}
		b.WriteString(")")
	}
	return strings.TrimSpace(b.String())
}

// writeMetrics prints a metrics snapshot in a stable order
func writeMetrics(w io.Writer, snap logger.MetricsSnapshot) error {
	fmt.Fprintln(w, "Metrics:")
	for _, name := range sortedKeys(snap.Counters) {
		fmt.Fprintf(w, "  %s: %d\n", name, snap.Counters[name])
	}
	for _, name := range sortedKeys(snap.Gauges) {
		fmt.Fprintf(w, "  %s: %g\n", name, snap.Gauges[name])
	}
	for _, name := range sortedKeys(snap.Timings) {
		t := snap.Timings[name]
		_, err := fmt.Fprintf(w, "  %s: count=%d avg=%s max=%s\n", name, t.Count, t.Average, t.Max)
		if err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
