package threshold

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/ngamma/glassdamage/pkg/units"
	"go.uber.org/zap"
)

// ErrNoThresholdFile is returned by LoadFirst when no candidate path can be
// opened. Callers normally treat it as an empty table.
var ErrNoThresholdFile = errors.New("no displacement threshold table found")

// DefaultCandidates is the lookup order used when no paths are configured
var DefaultCandidates = []string{"SRIM_Ed.dat", "../SRIM_Ed.dat"}

// ParseStats reports what Parse did with its input
type ParseStats struct {
	Entries int
	Skipped int
}

// Parse reads a plain-text threshold table. Each line holds
// "<symbol-or-name> <Ed in eV>"; blank lines and lines starting with '#'
// are ignored, malformed lines are skipped and counted. Later entries for
// the same key replace earlier ones.
func Parse(r io.Reader) (Table, ParseStats, error) {
	entries := make(map[string]float64)
	var stats ParseStats

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			stats.Skipped++
			continue
		}

		edEV, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || edEV <= 0 {
			stats.Skipped++
			continue
		}
		entries[fields[0]] = edEV * units.EV
	}
	if err := scanner.Err(); err != nil {
		return Table{}, stats, fmt.Errorf("reading threshold table: %w", err)
	}

	stats.Entries = len(entries)
	return NewTable(entries), stats, nil
}

// LoadFirst parses the first candidate that can be opened and ignores the
// rest. It returns the path that was used.
func LoadFirst(paths []string, logger *zap.SugaredLogger) (Table, string, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			logger.Debugf("threshold table candidate %s not usable: %v", path, err)
			continue
		}

		table, stats, err := Parse(f)
		f.Close()
		if err != nil {
			return Table{}, path, fmt.Errorf("%s: %w", path, err)
		}

		if stats.Skipped > 0 {
			logger.Warnf("threshold table %s: skipped %d malformed lines", path, stats.Skipped)
		}
		logger.Infow("loaded displacement threshold table", "path", path, "entries", stats.Entries)
		return table, path, nil
	}

	return NewTable(nil), "", ErrNoThresholdFile
}

// Lazy loads a table at most once, on first use. Concurrent first callers
// block until the single load finishes and all observe the same table.
type Lazy struct {
	once   sync.Once
	paths  []string
	logger *zap.SugaredLogger

	table  Table
	source string
	err    error
}

// NewLazy creates a loader over the given candidate paths
func NewLazy(paths []string, logger *zap.SugaredLogger) *Lazy {
	return &Lazy{paths: paths, logger: logger}
}

// Table returns the loaded table. A missing file yields an empty table.
func (l *Lazy) Table() Table {
	l.load()
	return l.table
}

// Source returns the path the table was read from, or "" when none was
// found, together with any read error other than a missing file
func (l *Lazy) Source() (string, error) {
	l.load()
	return l.source, l.err
}

func (l *Lazy) load() {
	l.once.Do(func() {
		table, source, err := LoadFirst(l.paths, l.logger)
		if errors.Is(err, ErrNoThresholdFile) {
			if l.logger != nil {
				l.logger.Info("no displacement threshold table found, using built-in defaults")
			}
			err = nil
		}
		l.table, l.source, l.err = table, source, err
	})
}
