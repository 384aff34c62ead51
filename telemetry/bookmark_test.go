package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_ReproductionBoom(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndDay: i * 30, Producers: 100, Distributors: 20, Reproductions: 2})
	}

	boom := WindowStats{WindowEndDay: 150, Producers: 100, Distributors: 20, Reproductions: 8}
	if !hasBookmark(bd.Check(boom), BookmarkReproductionBoom) {
		t.Error("expected reproduction_boom bookmark")
	}
}

func TestBookmarkDetector_ProducerCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndDay: i * 30, Producers: 100, Distributors: 10})
	}

	crash := WindowStats{WindowEndDay: 150, Producers: 50, Distributors: 10}
	if !hasBookmark(bd.Check(crash), BookmarkProducerCrash) {
		t.Error("expected producer_crash bookmark")
	}
}

func TestBookmarkDetector_ProducerRecovery(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndDay: i * 30, Producers: 5, Distributors: 10})
	}

	recovery := WindowStats{WindowEndDay: 120, Producers: 20, Distributors: 10}
	if !hasBookmark(bd.Check(recovery), BookmarkProducerRecovery) {
		t.Error("expected producer_recovery bookmark")
	}
}

func TestBookmarkDetector_ExtinctionOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)

	first := bd.Check(WindowStats{WindowEndDay: 30, Producers: 40, Distributors: 0})
	if !hasBookmark(first, BookmarkDistributorExtinct) {
		t.Fatal("expected distributor_extinct bookmark")
	}
	if hasBookmark(first, BookmarkProducerExtinct) {
		t.Error("unexpected producer_extinct bookmark")
	}

	again := bd.Check(WindowStats{WindowEndDay: 60, Producers: 40, Distributors: 0})
	if hasBookmark(again, BookmarkDistributorExtinct) {
		t.Error("distributor_extinct fired twice")
	}
}

func TestBookmarkDetector_StableEcosystem(t *testing.T) {
	bd := NewBookmarkDetector(10)

	fired := 0
	for i := 0; i < 12; i++ {
		if hasBookmark(bd.Check(WindowStats{WindowEndDay: i * 30, Producers: 100, Distributors: 20}), BookmarkStableEcosystem) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("stable_ecosystem fired %d times, want 1", fired)
	}
}
