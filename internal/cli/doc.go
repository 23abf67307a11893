// Package cli implements the command-line interface for ufc-events.
//
// The root command fetches the UFC events listing, prints the most recent
// scheduled and past events as text, JSON or an iCalendar feed, and can
// persist a snapshot so later runs report only events added since then.
// The show subcommand prints one event from the saved snapshot.
package cli
