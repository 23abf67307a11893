package scraper

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Selectors for the page grammar of the listing and detail pages
const (
	ScheduledEventsSelector = "table#Scheduled_events > tbody > tr"
	PastEventsSelector      = "table#Past_events > tbody > tr"
	DetailLinkSelector      = "a[href]"
	EventImageSelector      = "table.infobox img"
	FightCardSelector       = "table.toccolours > tbody > tr"
	AnnouncedBoutsSelector  = "h2:has(span#Announced_bouts)"
	BonusAwardsSelector     = "h2:has(span#Bonus_awards)"
)

var knownSelectors = []string{
	ScheduledEventsSelector,
	PastEventsSelector,
	DetailLinkSelector,
	EventImageSelector,
	FightCardSelector,
	AnnouncedBoutsSelector,
	BonusAwardsSelector,
}

// Querier finds the descendants of a node matching a selector, in document order
type Querier interface {
	Query(n *html.Node, selector string) []*html.Node
}

// SelectorQuerier is a Querier backed by CSS selectors. Compiled selectors
// are cached; the known page selectors are compiled up front.
type SelectorQuerier struct {
	mu       sync.RWMutex
	compiled map[string]cascadia.Selector
}

// NewSelectorQuerier creates a querier with the page selectors precompiled
func NewSelectorQuerier() *SelectorQuerier {
	q := &SelectorQuerier{compiled: make(map[string]cascadia.Selector, len(knownSelectors))}
	for _, s := range knownSelectors {
		q.compiled[s] = cascadia.MustCompile(s)
	}
	return q
}

// Query returns nil for invalid selectors
func (q *SelectorQuerier) Query(n *html.Node, selector string) []*html.Node {
	if n == nil {
		return nil
	}
	sel, err := q.compile(selector)
	if err != nil {
		return nil
	}
	return goquery.NewDocumentFromNode(n).FindMatcher(sel).Nodes
}

func (q *SelectorQuerier) compile(selector string) (cascadia.Selector, error) {
	q.mu.RLock()
	sel, ok := q.compiled[selector]
	q.mu.RUnlock()
	if ok {
		return sel, nil
	}

	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compiling selector %q: %w", selector, err)
	}

	q.mu.Lock()
	q.compiled[selector] = sel
	q.mu.Unlock()
	return sel, nil
}

// ParseHTML builds a node tree from raw markup. Empty input yields an empty
// document, in which every query finds nothing.
func ParseHTML(raw []byte) (*html.Node, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc.Nodes[0], nil
}
