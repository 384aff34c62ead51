package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTrackerKeepsBest(t *testing.T) {
	params := NewParamVector()
	path := filepath.Join(t.TempDir(), "log.csv")
	tr, err := newTracker(path, params, 3)
	if err != nil {
		t.Fatal(err)
	}

	a := params.DefaultVector()
	b := params.DefaultVector()
	b[0]++
	tr.Record(a, -10, 0.5, 0)
	tr.Record(b, -20, 0.2, 1)
	a[0] = 99 // recorded slices are copied
	tr.Record(a, -5, 0.9, 1)
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}

	if tr.bestFitness != -20 || tr.best[0] != b[0] {
		t.Errorf("best = %v (%v), want -20 (%v)", tr.bestFitness, tr.best[0], b[0])
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(rows))
	}
	if len(rows[0]) != 4+params.Dim() {
		t.Errorf("header has %d columns, want %d", len(rows[0]), 4+params.Dim())
	}
	if rows[2][1] != "-20.0000" {
		t.Errorf("second fitness = %q", rows[2][1])
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(75 * time.Second); got != "1m15s" {
		t.Errorf("formatDuration(75s) = %q", got)
	}
	if got := formatDuration(time.Hour + 2*time.Minute + 3*time.Second); got != "1h02m03s" {
		t.Errorf("formatDuration(1h2m3s) = %q", got)
	}
}
