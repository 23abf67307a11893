package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/ufc-events/internal/event"
)

const snapshotFile = "snapshot.json"

// Storage handles persistence of event snapshots
type Storage struct {
	dataDir string
}

// New creates a new Storage instance, creating dataDir if needed
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Path returns the snapshot file location
func (s *Storage) Path() string {
	return filepath.Join(s.dataDir, snapshotFile)
}

// LoadSnapshot loads the snapshot from disk
func (s *Storage) LoadSnapshot() (*event.Snapshot, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return event.NewSnapshot(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot event.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	if snapshot.Events == nil {
		snapshot.Events = make(map[string]*event.Event)
	}
	if snapshot.StableIndex == nil {
		snapshot.StableIndex = make(map[string]string)
		for id, evt := range snapshot.Events {
			snapshot.StableIndex[evt.StableKey] = id
		}
	}

	return &snapshot, nil
}

// SaveSnapshot writes the snapshot atomically via a temporary file
func (s *Storage) SaveSnapshot(snapshot *event.Snapshot) error {
	snapshot.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.Path()); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// CreateSnapshotFromEvents creates and saves a snapshot from a list of events
func (s *Storage) CreateSnapshotFromEvents(events []*event.Event) error {
	snapshot := event.CreateSnapshot(events, time.Now().UTC().Format(time.RFC3339))
	return s.SaveSnapshot(snapshot)
}

// GetEventByID retrieves an event by ID from the saved snapshot
func (s *Storage) GetEventByID(eventID string) (*event.Event, error) {
	snapshot, err := s.LoadSnapshot()
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	if evt, exists := snapshot.Events[eventID]; exists {
		return evt, nil
	}

	return nil, fmt.Errorf("event not found: %s", eventID)
}
