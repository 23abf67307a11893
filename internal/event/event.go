package event

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

// Event represents a single UFC event from the events listing
type Event struct {
	ID          string    `json:"id"`
	StableKey   string    `json:"stable_key"` // Stable identifier based on normalized name
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	ImageURL    string    `json:"image_url"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	IsScheduled bool      `json:"is_scheduled"`
	IsCancelled bool      `json:"is_cancelled"`
	DetailURL   string    `json:"detail_url,omitempty"`
	FightCard   FightCard `json:"fight_card"`
	BonusAwards []string  `json:"bonus_awards"`

	// AmbiguousFightCard is set when the detail page repeated a section
	// title and the fight card was discarded.
	AmbiguousFightCard bool `json:"ambiguous_fight_card,omitempty"`
}

// Fight is one bout of a fight card. Method, Round and Time are empty for
// bouts that have only been announced.
type Fight struct {
	WeightClass string `json:"weight_class"`
	FighterOne  string `json:"fighter_one"`
	FighterTwo  string `json:"fighter_two"`
	Method      string `json:"method"`
	Round       string `json:"round"`
	Time        string `json:"time"`
}

// Section is a titled group of bouts, e.g. "Main card"
type Section struct {
	Title  string  `json:"title"`
	Fights []Fight `json:"fights"`
}

// FightCard holds sections in the order they appear on the page.
// Titles are unique within a card.
type FightCard []Section

// Has reports whether the card already contains a section with the title
func (c FightCard) Has(title string) bool {
	_, ok := c.Section(title)
	return ok
}

// Section returns the fights listed under title
func (c FightCard) Section(title string) ([]Fight, bool) {
	for _, s := range c {
		if s.Title == title {
			return s.Fights, true
		}
	}
	return nil, false
}

// Titles returns the section titles in page order
func (c FightCard) Titles() []string {
	titles := make([]string, 0, len(c))
	for _, s := range c {
		titles = append(titles, s.Title)
	}
	return titles
}

// TotalFights counts bouts across all sections
func (c FightCard) TotalFights() int {
	total := 0
	for _, s := range c {
		total += len(s.Fights)
	}
	return total
}

// GenerateID creates a deterministic ID for an event based on name and date
func GenerateID(name string, date time.Time) string {
	h := sha1.New()
	h.Write([]byte(name + "|" + date.Format(DateLayout)))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// GenerateStableKey creates a stable identifier based on the normalized name.
// The key stays the same when an event is rescheduled.
func GenerateStableKey(name string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(name), " "))

	h := sha1.New()
	h.Write([]byte(normalized))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// NewEvent creates an Event with ID and StableKey populated and empty
// detail fields. Events are scheduled until marked otherwise.
func NewEvent(name string, date time.Time) *Event {
	return &Event{
		ID:          GenerateID(name, date),
		StableKey:   GenerateStableKey(name),
		Name:        name,
		Date:        date,
		IsScheduled: true,
		FightCard:   FightCard{},
		BonusAwards: []string{},
	}
}
