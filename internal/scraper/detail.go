package scraper

import (
	"errors"
	"unicode/utf8"

	"github.com/pfrederiksen/ufc-events/internal/event"
	"github.com/pfrederiksen/ufc-events/internal/logger"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// MinBonusAwardLength is the length an award citation must exceed to be
	// kept; shorter items are markup leftovers.
	MinBonusAwardLength = 20

	bonusAwardsListOffset = 4
)

// BonusAwards returns the citations of the list following the bonus awards
// heading, footnote markers removed, in page order.
func BonusAwards(heading *html.Node) []string {
	awards := []string{}

	list := siblingAt(heading, bonusAwardsListOffset)
	if !isElement(list, atom.Ul) {
		return awards
	}

	for _, item := range elementChildren(list) {
		text := textWithoutFootnote(item)
		if utf8.RuneCountInString(text) > MinBonusAwardLength {
			awards = append(awards, text)
		}
	}
	return awards
}

// extractDetail fills the detail-level fields of evt from its page tree
func (s *Scraper) extractDetail(doc *html.Node, evt *event.Event, log *logger.Logger) error {
	evt.ImageURL = s.imageURL(doc)

	card, err := BuildFightCard(s.querier.Query(doc, FightCardSelector))
	var dup *DuplicateSectionError
	switch {
	case errors.As(err, &dup):
		log.Debug("Fight card contains non-unique sections", logger.Fields{"section": dup.Title})
		evt.AmbiguousFightCard = true
		s.metrics.IncrCounter("fight_cards.ambiguous")
	case err != nil:
		return err
	default:
		if heading := s.first(doc, AnnouncedBoutsSelector); heading != nil {
			card = MergeAnnouncedBouts(heading, card, log)
		}
	}
	evt.FightCard = card

	if heading := s.first(doc, BonusAwardsSelector); heading != nil {
		evt.BonusAwards = BonusAwards(heading)
	}

	return nil
}

func (s *Scraper) imageURL(doc *html.Node) string {
	img := s.first(doc, EventImageSelector)
	if img == nil {
		return ""
	}
	src, _ := attr(img, "src")
	return src
}

func (s *Scraper) first(n *html.Node, selector string) *html.Node {
	if nodes := s.querier.Query(n, selector); len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}
