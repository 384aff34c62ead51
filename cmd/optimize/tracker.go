package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// tracker logs every evaluation to CSV and remembers the best parameters.
// The column set depends on the ParamVector, so rows are written untyped.
type tracker struct {
	file     *os.File
	w        *csv.Writer
	maxEvals int

	start       time.Time
	count       int
	bestFitness float64
	best        []float64
}

func newTracker(path string, params *ParamVector, maxEvals int) (*tracker, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	header := []string{"eval", "fitness", "quality", "invalid"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	return &tracker{
		file:        f,
		w:           w,
		maxEvals:    maxEvals,
		start:       time.Now(),
		bestFitness: 1e9,
	}, nil
}

// Record logs one evaluation of the clamped parameters x.
func (t *tracker) Record(x []float64, fitness, quality float64, invalid int) {
	t.count++
	if fitness < t.bestFitness {
		t.bestFitness = fitness
		t.best = append([]float64(nil), x...)
	}

	row := []string{
		strconv.Itoa(t.count),
		strconv.FormatFloat(fitness, 'f', 4, 64),
		strconv.FormatFloat(quality, 'f', 4, 64),
		strconv.Itoa(invalid),
	}
	for _, v := range x {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	if err := t.w.Write(row); err != nil {
		slog.Error("failed to write log row", "error", err)
	}
	t.w.Flush()

	elapsed := time.Since(t.start)
	remaining := time.Duration(t.maxEvals-t.count) * (elapsed / time.Duration(t.count))
	slog.Info("eval",
		"n", fmt.Sprintf("%d/%d", t.count, t.maxEvals),
		"fitness", fitness,
		"quality", quality,
		"best", t.bestFitness,
		"invalid", invalid,
		"elapsed", formatDuration(elapsed),
		"eta", formatDuration(remaining),
	)
}

func (t *tracker) Close() error {
	t.w.Flush()
	if err := t.w.Error(); err != nil {
		t.file.Close()
		return err
	}
	return t.file.Close()
}
