// Package store persists chart snapshots as canonical JSON files in a
// directory, one file per chart and date.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pevans/chartfed/chart"
)

// SnapshotStore is a directory of snapshot dumps.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore creates a snapshot store rooted at dir, creating the
// directory if needed (0700: owner-only access).
func NewSnapshotStore(dir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &SnapshotStore{dir: dir}, nil
}

// SaveChart writes a weekly snapshot's canonical JSON dump and returns the
// filename used.
func (s *SnapshotStore) SaveChart(c *chart.Chart) (string, error) {
	data, err := c.JSON()
	if err != nil {
		return "", err
	}
	name := snapshotFilename(c.Name, c.Date)
	return name, s.write(name, data)
}

// SaveYearEnd writes a year-end snapshot's canonical JSON dump and returns
// the filename used.
func (s *SnapshotStore) SaveYearEnd(y *chart.YearEndChart) (string, error) {
	data, err := y.JSON()
	if err != nil {
		return "", err
	}
	name := snapshotFilename(y.Name, fmt.Sprintf("%d", y.Year))
	return name, s.write(name, data)
}

// LoadChart reads a previously saved weekly snapshot. A missing file returns
// (nil, nil), matching "not found is not an error" for lookups.
func (s *SnapshotStore) LoadChart(name, date string) (*chart.Chart, error) {
	data, err := s.read(snapshotFilename(name, date))
	if err != nil || data == "" {
		return nil, err
	}
	return chart.ChartFromJSON(data)
}

// LoadYearEnd reads a previously saved year-end snapshot. A missing file
// returns (nil, nil).
func (s *SnapshotStore) LoadYearEnd(name string, year int) (*chart.YearEndChart, error) {
	data, err := s.read(snapshotFilename(name, fmt.Sprintf("%d", year)))
	if err != nil || data == "" {
		return nil, err
	}
	return chart.YearEndFromJSON(data)
}

// List returns the filenames of all stored snapshots, sorted.
func (s *SnapshotStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (s *SnapshotStore) write(name, data string) error {
	// 0600: owner-only read/write
	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(data), 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func (s *SnapshotStore) read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read snapshot: %w", err)
	}
	return string(data), nil
}

// snapshotFilename builds the file name for one chart and date. An undated
// snapshot (the current chart) is stored under "latest".
func snapshotFilename(name, date string) string {
	if date == "" {
		date = "latest"
	}
	return strings.Join([]string{name, date}, "-") + ".json"
}
