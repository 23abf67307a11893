package scraper

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/ufc-events/internal/event"
	"github.com/pfrederiksen/ufc-events/internal/logger"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CancelledToken marks a cancelled event in the last listing column
const CancelledToken = "Cancelled"

// Listing column positions. Past-event rows have a leading number column and
// a trailing reference column that are dropped before these apply.
const (
	colName = iota
	colDate
	colVenue
	colLocation
	colCancellation

	minListingCells = colDate + 1
)

// Carry is the state threaded from one listing row into the next when a
// merged cell omits a column.
type Carry struct {
	Venue     string
	Location  string
	Cancelled bool
}

// listingRow gives named access to the cells of a listing row
type listingRow struct {
	cells []*html.Node
}

func newListingRow(cells []*html.Node) (listingRow, error) {
	if len(cells) < minListingCells {
		return listingRow{}, fmt.Errorf("%w: listing row has %d cells, want at least %d",
			ErrRowTooNarrow, len(cells), minListingCells)
	}
	return listingRow{cells: cells}, nil
}

func (r listingRow) name() *html.Node { return r.cells[colName] }
func (r listingRow) date() *html.Node { return r.cells[colDate] }

func (r listingRow) venue() (*html.Node, bool)        { return r.optional(colVenue) }
func (r listingRow) location() (*html.Node, bool)     { return r.optional(colLocation) }
func (r listingRow) cancellation() (*html.Node, bool) { return r.optional(colCancellation) }

func (r listingRow) optional(i int) (*html.Node, bool) {
	if i >= len(r.cells) {
		return nil, false
	}
	return r.cells[i], true
}

// dataCells returns the td children of a table row
func dataCells(tr *html.Node) []*html.Node {
	return childElements(tr, atom.Td)
}

// trimPastCells drops the number and reference columns of a past-event row
func trimPastCells(cells []*html.Node) []*html.Node {
	if len(cells) < 2 {
		return nil
	}
	return cells[1 : len(cells)-1]
}

// ExtractRow reads the listing-level fields of one row. Venue and location
// come from the row unless the column is missing or holds only a footnote
// marker, in which case the carried value stays. The returned Carry feeds
// the next row of the same table.
func ExtractRow(cells []*html.Node, carry Carry, log *logger.Logger) (*event.Event, Carry, error) {
	row, err := newListingRow(cells)
	if err != nil {
		return nil, carry, err
	}

	name := Text(row.name())
	if name == "" {
		log.Warn("Event name was empty", nil)
	} else {
		log.Info("Start parsing event", logger.Fields{"event": name})
	}

	dateText := Text(row.date())
	date, err := event.ParseDate(dateText)
	if err != nil {
		log.Error("Event date could not be parsed", logger.Fields{"event": name, "date": dateText}, err)
		return nil, carry, fmt.Errorf("parsing date of event %q: %w", name, err)
	}

	next := carry
	if cell, ok := row.venue(); ok {
		if text := Text(cell); !isFootnote(text) {
			next.Venue = text
		}
	}
	if cell, ok := row.location(); ok {
		if text := Text(cell); !isFootnote(text) {
			next.Location = text
		}
	}
	if cell, ok := row.cancellation(); ok {
		next.Cancelled = strings.Contains(Text(cell), CancelledToken)
	}

	evt := event.NewEvent(name, date)
	evt.Venue = next.Venue
	evt.Location = next.Location
	evt.IsCancelled = next.Cancelled

	return evt, next, nil
}
