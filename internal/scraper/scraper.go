package scraper

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/pfrederiksen/ufc-events/internal/event"
	"github.com/pfrederiksen/ufc-events/internal/logger"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

const (
	EventsURL = "https://en.wikipedia.org/wiki/List_of_UFC_events"
	BaseURL   = "https://en.wikipedia.org"

	DefaultScheduledEvents = 10
	DefaultPastEvents      = 5
)

// Fetcher returns the raw markup at uri. A non-success response yields an
// empty body and a nil error; transport failures and cancellation are errors.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// Scraper extracts events from the listing page and its detail pages
type Scraper struct {
	fetcher     Fetcher
	querier     Querier
	log         *logger.Logger
	metrics     *logger.Metrics
	baseURL     *url.URL
	scheduled   int
	past        int
	concurrency int
}

// Option configures a Scraper
type Option func(*Scraper)

// WithQuantities bounds how many scheduled and past events are extracted.
// Negative values count as zero.
func WithQuantities(scheduled, past int) Option {
	return func(s *Scraper) {
		s.scheduled = max(scheduled, 0)
		s.past = max(past, 0)
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(s *Scraper) { s.log = log }
}

func WithMetrics(m *logger.Metrics) Option {
	return func(s *Scraper) { s.metrics = m }
}

func WithQuerier(q Querier) Option {
	return func(s *Scraper) { s.querier = q }
}

// WithConcurrency sets how many detail pages are fetched at once
func WithConcurrency(n int) Option {
	return func(s *Scraper) { s.concurrency = max(n, 1) }
}

// WithBaseURL sets the origin detail links are resolved against
func WithBaseURL(base string) Option {
	return func(s *Scraper) {
		if u, err := url.Parse(base); err == nil {
			s.baseURL = u
		}
	}
}

// New creates a Scraper that obtains pages from f
func New(f Fetcher, opts ...Option) *Scraper {
	base, _ := url.Parse(BaseURL)
	s := &Scraper{
		fetcher:     f,
		querier:     NewSelectorQuerier(),
		log:         logger.Default(),
		metrics:     logger.NewMetrics(),
		baseURL:     base,
		scheduled:   DefaultScheduledEvents,
		past:        DefaultPastEvents,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Metrics returns the tracker the scraper records into
func (s *Scraper) Metrics() *logger.Metrics {
	return s.metrics
}

// FetchEvents fetches the listing page at listingURL and extracts the most
// recent scheduled events followed by the most recent past events. It fails
// as a whole; no events are returned alongside an error.
func (s *Scraper) FetchEvents(ctx context.Context, listingURL string) ([]*event.Event, error) {
	body, err := s.fetch(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("fetching events page: %w", err)
	}

	doc, err := ParseHTML(body)
	if err != nil {
		return nil, err
	}

	events, err := s.ParseEvents(ctx, doc)
	if err != nil {
		return nil, err
	}

	s.log.Info("Finished parsing events", logger.Fields{"total": len(events)})
	return events, nil
}

// ParseEvents extracts events from a parsed listing page, fetching detail
// pages for rows that link to one.
func (s *Scraper) ParseEvents(ctx context.Context, doc *html.Node) ([]*event.Event, error) {
	events := make([]*event.Event, 0, s.scheduled+s.past)

	scheduled := s.querier.Query(doc, ScheduledEventsSelector)
	if len(scheduled) == 0 {
		s.log.Warn("Scheduled events were not found", nil)
	} else {
		rows := lastN(withoutHeader(scheduled), s.scheduled)
		s.log.Debug("Starting parsing scheduled events", logger.Fields{"estimated": len(rows)})

		parsed, err := s.parseTable(ctx, rows, false)
		if err != nil {
			return nil, fmt.Errorf("scheduled events: %w", err)
		}
		events = append(events, parsed...)
	}

	past := s.querier.Query(doc, PastEventsSelector)
	if len(past) == 0 {
		s.log.Warn("Past events were not found", nil)
	} else {
		rows := firstN(withoutHeader(past), s.past)
		s.log.Debug("Starting parsing past events", logger.Fields{"estimated": len(rows)})

		parsed, err := s.parseTable(ctx, rows, true)
		if err != nil {
			return nil, fmt.Errorf("past events: %w", err)
		}
		events = append(events, parsed...)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.metrics.SetGauge("events.total", float64(len(events)))
	return events, nil
}

// parseTable walks the rows of one table. Carried state starts empty for
// every table.
func (s *Scraper) parseTable(ctx context.Context, rows []*html.Node, isPast bool) ([]*event.Event, error) {
	events := make([]*event.Event, 0, len(rows))
	links := make([]string, 0, len(rows))

	var carry Carry
	for i, tr := range rows {
		cells := dataCells(tr)
		if isPast {
			cells = trimPastCells(cells)
		}

		evt, next, err := ExtractRow(cells, carry, s.log)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		carry = next
		evt.IsScheduled = !isPast

		events = append(events, evt)
		links = append(links, s.detailLink(cells[colName]))
	}

	if err := s.parseDetails(ctx, events, links); err != nil {
		return nil, err
	}

	for _, evt := range events {
		s.metrics.IncrCounter("events.parsed")
		s.log.Info("Finished parsing event", logger.Fields{
			"event": evt.Name,
			"date":  evt.Date.Format(event.DateLayout),
		})
		s.log.Debug("Additional information about the event", logger.Fields{
			"venue":        evt.Venue,
			"location":     evt.Location,
			"total_cards":  len(evt.FightCard),
			"total_fights": evt.FightCard.TotalFights(),
		})
	}

	return events, nil
}

// parseDetails fetches detail pages, up to s.concurrency at a time. Each
// goroutine writes only to its own event.
func (s *Scraper) parseDetails(ctx context.Context, events []*event.Event, links []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, evt := range events {
		log := s.log.With(logger.Fields{"event": evt.Name, "date": evt.Date.Format(event.DateLayout)})
		if links[i] == "" {
			log.Debug("Fight card href was not found", nil)
			continue
		}

		i, evt := i, evt
		g.Go(func() error {
			return s.parseDetail(ctx, evt, links[i], log)
		})
	}

	return g.Wait()
}

func (s *Scraper) parseDetail(ctx context.Context, evt *event.Event, href string, log *logger.Logger) error {
	uri, err := s.resolve(href)
	if err != nil {
		return fmt.Errorf("resolving detail link of %q: %w", evt.Name, err)
	}
	evt.DetailURL = uri

	log.Info("Start parsing event details", logger.Fields{"uri": uri})
	body, err := s.fetch(ctx, uri)
	if err != nil {
		return fmt.Errorf("fetching details of %q: %w", evt.Name, err)
	}

	doc, err := ParseHTML(body)
	if err != nil {
		return fmt.Errorf("details of %q: %w", evt.Name, err)
	}
	if err := s.extractDetail(doc, evt, log); err != nil {
		return fmt.Errorf("details of %q: %w", evt.Name, err)
	}
	return nil
}

func (s *Scraper) fetch(ctx context.Context, uri string) ([]byte, error) {
	start := time.Now()
	body, err := s.fetcher.Fetch(ctx, uri)
	s.metrics.RecordTiming("fetch", time.Since(start))
	s.metrics.IncrCounter("pages.fetched")
	return body, err
}

func (s *Scraper) detailLink(nameCell *html.Node) string {
	a := s.first(nameCell, DetailLinkSelector)
	if a == nil {
		return ""
	}
	href, _ := attr(a, "href")
	return href
}

func (s *Scraper) resolve(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return s.baseURL.ResolveReference(ref).String(), nil
}

// withoutHeader drops the header row and any other row without data cells
func withoutHeader(rows []*html.Node) []*html.Node {
	if len(rows) == 0 {
		return nil
	}
	kept := make([]*html.Node, 0, len(rows)-1)
	for _, tr := range rows[1:] {
		if len(dataCells(tr)) > 0 {
			kept = append(kept, tr)
		}
	}
	return kept
}

func firstN(rows []*html.Node, n int) []*html.Node {
	if n >= len(rows) {
		return rows
	}
	return rows[:n]
}

func lastN(rows []*html.Node, n int) []*html.Node {
	if n >= len(rows) {
		return rows
	}
	return rows[len(rows)-n:]
}
