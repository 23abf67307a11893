// Package calendar renders extracted events as an iCalendar (RFC 5545) feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/ufc-events/internal/event"
)

// GenerateICS generates a calendar with one all-day VEVENT per event
func GenerateICS(events []*event.Event) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//UFC Events//ufc-events//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	now := time.Now().UTC()
	for _, evt := range events {
		writeEvent(&ics, evt, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, evt *event.Event, now time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@ufc-events\r\n", evt.ID))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))

	// All-day event; DTEND is exclusive
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", formatICSDate(evt.Date)))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", formatICSDate(evt.Date.AddDate(0, 0, 1))))

	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(evt.Name)))
	if description := describe(evt); description != "" {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))
	}

	if location := joinNonEmpty(", ", evt.Venue, evt.Location); location != "" {
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(location)))
	}
	if evt.DetailURL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", evt.DetailURL))
	}

	if evt.IsCancelled {
		ics.WriteString("STATUS:CANCELLED\r\n")
	} else {
		ics.WriteString("STATUS:CONFIRMED\r\n")
	}
	ics.WriteString("TRANSP:TRANSPARENT\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// describe lists the first bout of every section
func describe(evt *event.Event) string {
	var lines []string
	for _, section := range evt.FightCard {
		if len(section.Fights) == 0 {
			continue
		}
		f := section.Fights[0]
		lines = append(lines, fmt.Sprintf("%s: %s vs. %s (%s)", section.Title, f.FighterOne, f.FighterTwo, f.WeightClass))
	}
	return strings.Join(lines, "\n")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func formatICSDate(t time.Time) string {
	return t.Format("20060102")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
