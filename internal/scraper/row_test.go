package scraper

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/ufc-events/internal/event"
	"github.com/pfrederiksen/ufc-events/internal/logger"
)

func TestExtractRow(t *testing.T) {
	log := logger.Discard()

	tests := []struct {
		name      string
		cells     []string
		carry     Carry
		wantVenue string
		wantLoc   string
		wantCanc  bool
	}{
		{
			name:      "all columns present",
			cells:     []string{"UFC 300", "Apr 13, 2024", "T-Mobile Arena", "Las Vegas, Nevada, U.S.", "<sup>[1]</sup>"},
			carry:     Carry{Venue: "UFC Apex", Location: "Enterprise, Nevada, U.S.", Cancelled: true},
			wantVenue: "T-Mobile Arena",
			wantLoc:   "Las Vegas, Nevada, U.S.",
			wantCanc:  false,
		},
		{
			name:      "footnote venue keeps carried venue",
			cells:     []string{"UFC 301", "May 4, 2024", "[2]", "Rio de Janeiro, Brazil"},
			carry:     Carry{Venue: "T-Mobile Arena", Location: "Las Vegas, Nevada, U.S."},
			wantVenue: "T-Mobile Arena",
			wantLoc:   "Rio de Janeiro, Brazil",
		},
		{
			name:      "encoded footnote location keeps carried location",
			cells:     []string{"UFC 301", "May 4, 2024", "Farmasi Arena", "&amp;#91;7&amp;#93;"},
			carry:     Carry{Venue: "T-Mobile Arena", Location: "Las Vegas, Nevada, U.S."},
			wantVenue: "Farmasi Arena",
			wantLoc:   "Las Vegas, Nevada, U.S.",
		},
		{
			name:      "omitted columns carry everything",
			cells:     []string{"UFC on ESPN 63", "Dec 21, 2024"},
			carry:     Carry{Venue: "T-Mobile Arena", Location: "Las Vegas, Nevada, U.S.", Cancelled: true},
			wantVenue: "T-Mobile Arena",
			wantLoc:   "Las Vegas, Nevada, U.S.",
			wantCanc:  true,
		},
		{
			name:      "cancellation token",
			cells:     []string{"UFC 233", "Jan 26, 2019", "Honda Center", "Anaheim, California, U.S.", "Cancelled"},
			wantVenue: "Honda Center",
			wantLoc:   "Anaheim, California, U.S.",
			wantCanc:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt, next, err := ExtractRow(rowCells(t, tt.cells...), tt.carry, log)
			if err != nil {
				t.Fatalf("ExtractRow() unexpected error: %v", err)
			}

			if evt.Name != tt.cells[0] {
				t.Errorf("Name = %q, want %q", evt.Name, tt.cells[0])
			}
			if evt.Venue != tt.wantVenue {
				t.Errorf("Venue = %q, want %q", evt.Venue, tt.wantVenue)
			}
			if evt.Location != tt.wantLoc {
				t.Errorf("Location = %q, want %q", evt.Location, tt.wantLoc)
			}
			if evt.IsCancelled != tt.wantCanc {
				t.Errorf("IsCancelled = %v, want %v", evt.IsCancelled, tt.wantCanc)
			}

			want := Carry{Venue: tt.wantVenue, Location: tt.wantLoc, Cancelled: tt.wantCanc}
			if next != want {
				t.Errorf("next carry = %+v, want %+v", next, want)
			}
		})
	}
}

func TestExtractRow_FootnoteVenueSequence(t *testing.T) {
	rows := [][]string{
		{"UFC 310", "Dec 7, 2024", "T-Mobile Arena", "Las Vegas, Nevada, U.S."},
		{"UFC Fight Night 249", "Dec 14, 2024", "[3]", "Tampa, Florida, U.S."},
		{"UFC on ESPN 63", "Dec 21, 2024", "&#91;4&#93;"},
		{"UFC 311", "Jan 18, 2025", "Intuit Dome", "Inglewood, California, U.S."},
		{"UFC Fight Night 250", "Jan 25, 2025", "[5]"},
	}
	wantVenues := []string{"T-Mobile Arena", "T-Mobile Arena", "T-Mobile Arena", "Intuit Dome", "Intuit Dome"}

	var carry Carry
	for i, cells := range rows {
		evt, next, err := ExtractRow(rowCells(t, cells...), carry, logger.Discard())
		if err != nil {
			t.Fatalf("row %d: unexpected error: %v", i, err)
		}
		if evt.Venue != wantVenues[i] {
			t.Errorf("row %d: Venue = %q, want %q", i, evt.Venue, wantVenues[i])
		}
		carry = next
	}
}

func TestExtractRow_Date(t *testing.T) {
	evt, _, err := ExtractRow(rowCells(t, "UFC 300", "Apr 13, 2024"), Carry{}, logger.Discard())
	if err != nil {
		t.Fatalf("ExtractRow() unexpected error: %v", err)
	}

	want := time.Date(2024, time.April, 13, 0, 0, 0, 0, time.UTC)
	if !evt.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", evt.Date, want)
	}
	if evt.ID != event.GenerateID("UFC 300", want) {
		t.Error("ID should be derived from name and date")
	}
}

func TestExtractRow_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cells   []string
		wantErr error
	}{
		{"unparsable date", []string{"UFC 300", "TBA", "T-Mobile Arena"}, event.ErrInvalidDate},
		{"empty date", []string{"UFC 300", ""}, event.ErrInvalidDate},
		{"single cell", []string{"UFC 300"}, ErrRowTooNarrow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carry := Carry{Venue: "UFC Apex"}
			evt, next, err := ExtractRow(rowCells(t, tt.cells...), carry, logger.Discard())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ExtractRow() error = %v, want %v", err, tt.wantErr)
			}
			if evt != nil {
				t.Error("expected no event on error")
			}
			if next != carry {
				t.Errorf("carry changed on error: %+v", next)
			}
		})
	}
}

func TestExtractRow_EmptyNameWarns(t *testing.T) {
	log, buf := testLogger()

	evt, _, err := ExtractRow(rowCells(t, "", "Apr 13, 2024"), Carry{}, log)
	if err != nil {
		t.Fatalf("ExtractRow() unexpected error: %v", err)
	}
	if evt.Name != "" {
		t.Errorf("Name = %q, want empty", evt.Name)
	}
	if !strings.Contains(buf.String(), `"level":"WARN"`) {
		t.Errorf("expected a warning, got logs: %s", buf.String())
	}
}

func TestTrimPastCells(t *testing.T) {
	cells := rowCells(t, "700", "UFC 308", "Oct 26, 2024", "Etihad Arena", "Abu Dhabi, UAE", "16,589", "[5]")
	trimmed := trimPastCells(cells)

	if len(trimmed) != 5 {
		t.Fatalf("expected 5 cells, got %d", len(trimmed))
	}
	if got := Text(trimmed[0]); got != "UFC 308" {
		t.Errorf("first cell = %q, want UFC 308", got)
	}
	if got := Text(trimmed[4]); got != "16,589" {
		t.Errorf("last cell = %q, want 16,589", got)
	}

	if got := trimPastCells(rowCells(t, "1")); got != nil {
		t.Errorf("trimPastCells of one cell = %v, want nil", got)
	}
}
