package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkReproductionBoom   BookmarkType = "reproduction_boom"
	BookmarkProducerRecovery   BookmarkType = "producer_recovery"
	BookmarkProducerCrash      BookmarkType = "producer_crash"
	BookmarkProducerExtinct    BookmarkType = "producer_extinct"
	BookmarkDistributorExtinct BookmarkType = "distributor_extinct"
	BookmarkStableEcosystem    BookmarkType = "stable_ecosystem"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Day         int          `csv:"day"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"day", b.Day,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentProducerMin  int
	recentProducerPeak int
	stableWindowsCount int

	producersExtinct    bool
	distributorsExtinct bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable ecosystem detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	// Extinctions fire once each, even on the first window
	if b := bd.checkExtinction(stats); b != nil {
		bookmarks = append(bookmarks, b...)
	}

	if bd.historyFull || bd.historyIdx > 0 {
		if b := bd.checkReproductionBoom(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkProducerRecovery(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkProducerCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkStableEcosystem(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	if stats.Producers < bd.recentProducerMin || bd.recentProducerMin == 0 {
		bd.recentProducerMin = stats.Producers
	}
	if stats.Producers > bd.recentProducerPeak {
		bd.recentProducerPeak = stats.Producers
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) []Bookmark {
	var out []Bookmark
	if stats.Producers == 0 && !bd.producersExtinct {
		bd.producersExtinct = true
		out = append(out, Bookmark{
			Type:        BookmarkProducerExtinct,
			Day:         stats.WindowEndDay,
			Description: fmt.Sprintf("Producers extinct on day %d", stats.WindowEndDay),
		})
	}
	if stats.Distributors == 0 && !bd.distributorsExtinct {
		bd.distributorsExtinct = true
		out = append(out, Bookmark{
			Type:        BookmarkDistributorExtinct,
			Day:         stats.WindowEndDay,
			Description: fmt.Sprintf("Distributors extinct on day %d", stats.WindowEndDay),
		})
	}
	return out
}

func (bd *BookmarkDetector) checkReproductionBoom(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Reproductions
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	current := float64(stats.Reproductions)
	if current > avg*2.0 && stats.Reproductions >= 3 {
		return &Bookmark{
			Type:        BookmarkReproductionBoom,
			Day:         stats.WindowEndDay,
			Description: fmt.Sprintf("%d reproductions is %.1fx average (%.1f)", stats.Reproductions, current/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkProducerRecovery(stats WindowStats) *Bookmark {
	if bd.recentProducerMin == 0 || bd.recentProducerMin > 10 {
		return nil
	}

	threshold := bd.recentProducerMin * 3
	if stats.Producers >= threshold && stats.Producers >= 10 {
		oldMin := bd.recentProducerMin
		bd.recentProducerMin = stats.Producers

		return &Bookmark{
			Type:        BookmarkProducerRecovery,
			Day:         stats.WindowEndDay,
			Description: fmt.Sprintf("Producer population recovered from %d to %d", oldMin, stats.Producers),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkProducerCrash(stats WindowStats) *Bookmark {
	if bd.recentProducerPeak == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.Producers)/float64(bd.recentProducerPeak)
	if drop > 0.30 && stats.Producers < bd.recentProducerPeak-10 {
		oldPeak := bd.recentProducerPeak
		bd.recentProducerPeak = stats.Producers

		return &Bookmark{
			Type:        BookmarkProducerCrash,
			Day:         stats.WindowEndDay,
			Description: fmt.Sprintf("Producers crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Producers),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	if stats.Producers < 10 || stats.Distributors < 3 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	recent := history[len(history)-4:]
	prods := make([]float64, len(recent))
	dists := make([]float64, len(recent))
	for i, h := range recent {
		prods[i] = float64(h.Producers)
		dists[i] = float64(h.Distributors)
	}

	// Squared coefficient of variation below 0.04 means CV < 0.2
	if cv2(prods) < 0.04 && cv2(dists) < 0.04 {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 5 {
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Day:         stats.WindowEndDay,
			Description: fmt.Sprintf("Stable ecosystem with %d producers, %d distributors over 5+ windows", stats.Producers, stats.Distributors),
		}
	}
	return nil
}

func cv2(x []float64) float64 {
	mean, variance := stat.MeanVariance(x, nil)
	if mean == 0 {
		return 0
	}
	return variance / (mean * mean)
}
