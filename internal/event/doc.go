// Package event provides the records produced by the UFC events scraper.
//
// An Event is one row of the events listing, optionally enriched with the
// fight card, image and bonus awards from its detail page. Events are given a
// deterministic SHA1-based ID derived from name and date, and a stable key
// derived from the name alone, so snapshots taken on different runs can be
// diffed.
package event
