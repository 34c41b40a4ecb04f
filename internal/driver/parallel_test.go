package driver

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestForEachIndexedVisitsAll(t *testing.T) {
	seen := make([]int, 50)
	var running, peak atomic.Int32
	err := forEachIndexed(context.Background(), len(seen), 4, func(_ context.Context, i int) error {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		seen[i]++
		running.Add(-1)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, n := range seen {
		if n != 1 {
			t.Fatalf("index %d visited %d times", i, n)
		}
	}
	if peak.Load() > 4 {
		t.Fatalf("peak concurrency %d exceeds limit", peak.Load())
	}
}

func TestForEachIndexedStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	err := forEachIndexed(context.Background(), 10, 1, func(_ context.Context, i int) error {
		if i == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if err := forEachIndexed(context.Background(), 0, 0, nil); err != nil {
		t.Fatalf("empty run: %v", err)
	}
}
