package crm

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// Two rapid rescore clicks on the same row must not race each other: the
// second caller joins the in-flight request and both observe one result.
func TestConcurrentRescoreSharesOneUpstreamCall(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		_, _ = w.Write([]byte(`{"score":66}`))
	})

	const workers = 4
	var wg sync.WaitGroup
	scores := make([]float64, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			scores[i], errs[i] = c.RescoreLead(context.Background(), "t", 7)
		}(i)
	}
	// let all workers join the flight before the backend responds
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if scores[i] != 66 {
			t.Fatalf("worker %d got score %v", i, scores[i])
		}
	}
}

// Rescores of different rows proceed independently.
func TestRescoreDifferentRowsNotSerialized(t *testing.T) {
	var calls int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"score":1}`))
	})
	if _, err := c.RescoreLead(context.Background(), "t", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := c.RescoreLead(context.Background(), "t", 2); err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", calls)
	}
}
