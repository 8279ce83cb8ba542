package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestObserveAggregates(t *testing.T) {
	c := NewCollector()
	c.Observe("download", 10*time.Millisecond)
	c.Observe("download", 30*time.Millisecond)
	c.Observe("analyze_full", 20*time.Millisecond)

	snaps := c.Snapshot()
	if len(snaps) != 2 {
		t.Fatalf("got %d operations, want 2", len(snaps))
	}

	// Sorted by name: analyze_full first.
	if snaps[0].Name != "analyze_full" || snaps[1].Name != "download" {
		t.Errorf("unexpected order: %v, %v", snaps[0].Name, snaps[1].Name)
	}

	dl := snaps[1]
	if dl.Count != 2 {
		t.Errorf("download count = %d, want 2", dl.Count)
	}
	if dl.MinTimeMs != 10 || dl.MaxTimeMs != 30 {
		t.Errorf("download min/max = %d/%d, want 10/30", dl.MinTimeMs, dl.MaxTimeMs)
	}
	if dl.AvgTimeMs != 20 {
		t.Errorf("download avg = %v, want 20", dl.AvgTimeMs)
	}
}

func TestTimePassesThroughError(t *testing.T) {
	c := NewCollector()
	sentinel := errors.New("boom")

	err := c.Time("op", func() error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Errorf("Time() error = %v, want sentinel", err)
	}

	snaps := c.Snapshot()
	if len(snaps) != 1 || snaps[0].Count != 1 {
		t.Error("failed operation must still be counted")
	}
}

func TestObserveConcurrent(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Observe("op", time.Millisecond)
			}
		}()
	}
	wg.Wait()

	snaps := c.Snapshot()
	if snaps[0].Count != 800 {
		t.Errorf("count = %d, want 800", snaps[0].Count)
	}
}
