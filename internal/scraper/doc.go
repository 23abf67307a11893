// Package scraper extracts UFC events from the Wikipedia "List of UFC events"
// page and the per-event detail pages it links to.
//
// The listing has a scheduled-events table and a past-events table. Both
// represent merged cells by omitting columns on following rows, so venue,
// location and the cancellation flag are carried forward row by row within a
// table. Detail pages contribute the infobox image, the fight card grouped by
// section, bouts announced only in prose and the bonus award citations.
//
// Markup is navigated through a Querier so the extraction can run against
// synthetic trees, and pages are obtained through a Fetcher.
package scraper
