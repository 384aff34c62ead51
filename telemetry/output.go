package telemetry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/klauspost/compress/zstd"

	"github.com/pthm-cable/meadow/config"
)

// csvStream is one CSV output file, optionally zstd-compressed.
type csvStream struct {
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer

	headerWritten bool
}

func openStream(path string, compress bool) (*csvStream, error) {
	if compress {
		path += ".zst"
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	s := &csvStream{f: f}
	var dst io.Writer = f
	if compress {
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("creating zstd encoder for %s: %w", filepath.Base(path), err)
		}
		s.enc = enc
		dst = enc
	}
	s.w = bufio.NewWriter(dst)
	return s, nil
}

// write marshals records, with headers only on the first call.
func (s *csvStream) write(records any) error {
	if !s.headerWritten {
		if err := gocsv.Marshal(records, s.w); err != nil {
			return err
		}
		s.headerWritten = true
	} else if err := gocsv.MarshalWithoutHeaders(records, s.w); err != nil {
		return err
	}
	return s.w.Flush()
}

func (s *csvStream) close() error {
	var firstErr error
	if err := s.w.Flush(); err != nil {
		firstErr = err
	}
	if s.enc != nil {
		if err := s.enc.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := s.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir       string
	telemetry *csvStream
	perf      *csvStream
	bookmarks *csvStream
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled). With compress set every
// CSV file is written as a .csv.zst stream.
func NewOutputManager(dir string, compress bool) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error

	if om.telemetry, err = openStream(filepath.Join(dir, "telemetry.csv"), compress); err != nil {
		return nil, err
	}
	if om.perf, err = openStream(filepath.Join(dir, "perf.csv"), compress); err != nil {
		om.telemetry.close()
		return nil, err
	}
	if om.bookmarks, err = openStream(filepath.Join(dir, "bookmarks.csv"), compress); err != nil {
		om.telemetry.close()
		om.perf.close()
		return nil, err
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.telemetry.write([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteBookmark writes a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	if err := om.bookmarks.write([]Bookmark{b}); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, s := range []*csvStream{om.telemetry, om.perf, om.bookmarks} {
		if s == nil {
			continue
		}
		if err := s.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
