package event

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical layout events are printed and keyed with
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when date text matches none of the known layouts
var ErrInvalidDate = errors.New("invalid event date")

// dateLayouts are tried in order. The listing uses "Apr 13, 2024".
var dateLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan. 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	DateLayout,
}

// ParseDate parses listing date text into a calendar date at midnight UTC
func ParseDate(dateText string) (time.Time, error) {
	text := strings.Join(strings.Fields(dateText), " ")
	if text == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrInvalidDate)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, dateText)
}

// IsPast reports whether the event date is before the day containing now
func (e *Event) IsPast(now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return e.Date.Before(today)
}

// DaysUntil returns whole days from now until the event, negative when past
func (e *Event) DaysUntil(now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Date.Sub(today).Hours() / 24)
}
