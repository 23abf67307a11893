// Package storage handles persistence of extracted event snapshots.
//
// Snapshots are stored as indented JSON in a data directory (by default
// ~/.local/share/ufc-events). A missing snapshot file is not an error; it
// loads as an empty snapshot so the first run reports every event as new.
package storage
