package scraper

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/ufc-events/internal/event"
	"github.com/pfrederiksen/ufc-events/internal/logger"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AnnouncedBoutsTitle is the section bouts from the prose list are filed under
const AnnouncedBoutsTitle = "Announced bouts"

const (
	// fightCardColumnHeaderRow is the repeated "Weight class / Method / ..."
	// header row of the fight card table.
	fightCardColumnHeaderRow = 1

	// announcedBoutsListOffset is the raw sibling distance from the heading
	// to its list.
	announcedBoutsListOffset = 2
)

// Fight card columns; column 2 holds the "def."/"vs." separator.
const (
	fightColWeightClass = 0
	fightColFighterOne  = 1
	fightColFighterTwo  = 3
	fightColMethod      = 4
	fightColRound       = 5
	fightColTime        = 6

	minFightCells = fightColTime + 1
)

type fightRow struct {
	cells []*html.Node
}

func newFightRow(cells []*html.Node) (fightRow, error) {
	if len(cells) < minFightCells {
		return fightRow{}, fmt.Errorf("%w: fight row has %d cells, want at least %d",
			ErrRowTooNarrow, len(cells), minFightCells)
	}
	return fightRow{cells: cells}, nil
}

func (r fightRow) fight() event.Fight {
	return event.Fight{
		WeightClass: Text(r.cells[fightColWeightClass]),
		FighterOne:  Text(r.cells[fightColFighterOne]),
		FighterTwo:  Text(r.cells[fightColFighterTwo]),
		Method:      Text(r.cells[fightColMethod]),
		Round:       Text(r.cells[fightColRound]),
		Time:        Text(r.cells[fightColTime]),
	}
}

// isSectionHeader reports whether the row is a single th cell
func isSectionHeader(cells []*html.Node) bool {
	return len(cells) == 1 && isElement(cells[0], atom.Th)
}

// BuildFightCard groups fight card rows under the section header preceding
// them. A repeated section title discards the whole card and returns a
// *DuplicateSectionError next to an empty card.
func BuildFightCard(rows []*html.Node) (event.FightCard, error) {
	card := event.FightCard{}
	if len(rows) > fightCardColumnHeaderRow {
		kept := make([]*html.Node, 0, len(rows)-1)
		kept = append(kept, rows[:fightCardColumnHeaderRow]...)
		rows = append(kept, rows[fightCardColumnHeaderRow+1:]...)
	}

	current := -1
	for i, row := range rows {
		cells := elementChildren(row)

		if isSectionHeader(cells) {
			title := Text(cells[0])
			if card.Has(title) {
				return event.FightCard{}, &DuplicateSectionError{Title: title}
			}
			card = append(card, event.Section{Title: title, Fights: []event.Fight{}})
			current = len(card) - 1
			continue
		}

		if current < 0 {
			return nil, fmt.Errorf("%w: row %d", ErrFightBeforeSection, i)
		}

		fr, err := newFightRow(cells)
		if err != nil {
			return nil, fmt.Errorf("fight card section %q: %w", card[current].Title, err)
		}
		card[current].Fights = append(card[current].Fights, fr.fight())
	}

	return card, nil
}

// MergeAnnouncedBouts parses the list following the "Announced bouts"
// heading into fights without results and appends them as their own section.
// An existing section of that name is left untouched.
func MergeAnnouncedBouts(heading *html.Node, card event.FightCard, log *logger.Logger) event.FightCard {
	list := siblingAt(heading, announcedBoutsListOffset)
	if !isElement(list, atom.Ul) {
		log.Debug("Announced bouts list was not found", nil)
		return card
	}

	items := elementChildren(list)
	if len(items) == 0 {
		return card
	}

	if card.Has(AnnouncedBoutsTitle) {
		log.Debug("Fight card already contains announced bouts", logger.Fields{"section": AnnouncedBoutsTitle})
		return card
	}

	fights := make([]event.Fight, 0, len(items))
	for _, item := range items {
		text := textWithoutFootnote(item)
		fight, ok := parseAnnouncedBout(text)
		if !ok {
			log.Warn("Skipping malformed announced bout", logger.Fields{"text": text})
			continue
		}
		fights = append(fights, fight)
	}

	return append(card, event.Section{Title: AnnouncedBoutsTitle, Fights: fights})
}

// parseAnnouncedBout reads "Lightweight bout: Alice Smith vs. Bob Jones"
func parseAnnouncedBout(text string) (event.Fight, bool) {
	label, fighters, ok := strings.Cut(text, ":")
	if !ok {
		return event.Fight{}, false
	}
	one, two, ok := strings.Cut(fighters, "vs.")
	if !ok {
		return event.Fight{}, false
	}

	return event.Fight{
		WeightClass: strings.TrimSpace(strings.ReplaceAll(label, "bout", "")),
		FighterOne:  strings.TrimSpace(one),
		FighterTwo:  strings.TrimSpace(two),
	}, true
}
