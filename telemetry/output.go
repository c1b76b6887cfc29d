package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// OutputManager appends window stats to a CSV file in the run's output
// directory.
type OutputManager struct {
	dir           string
	statsFile     *os.File
	headerWritten bool
}

// NewOutputManager creates the output directory and opens stats.csv for
// appending.
func NewOutputManager(dir string) (*OutputManager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "stats.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating stats file: %w", err)
	}

	return &OutputManager{dir: dir, statsFile: f}, nil
}

// Dir returns the output directory path.
func (o *OutputManager) Dir() string { return o.dir }

// WriteStats appends one window of stats. The header row is written on the
// first call only.
func (o *OutputManager) WriteStats(ws WindowStats) error {
	rows := []WindowStats{ws}
	var err error
	if !o.headerWritten {
		err = gocsv.Marshal(rows, o.statsFile)
		o.headerWritten = true
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, o.statsFile)
	}
	if err != nil {
		return fmt.Errorf("writing stats row: %w", err)
	}
	return nil
}

// Close flushes and closes the stats file.
func (o *OutputManager) Close() error {
	if o.statsFile == nil {
		return nil
	}
	err := o.statsFile.Close()
	o.statsFile = nil
	return err
}
