package worker

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "10.0.0.1"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	if err := limiter.Wait(ctx, "10.0.0.2"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	if limiter.Len() != 2 {
		t.Errorf("expected 2 tracked keys, got %d", limiter.Len())
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.01, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "k"); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "k"); err == nil {
		t.Error("expected second wait to fail before a token is available")
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	limiter := NewLimiter(1, 1)
	key := "10.0.0.1"

	if !limiter.Allow(key) {
		t.Errorf("first request should pass")
	}

	if limiter.Allow(key) {
		t.Errorf("expected allow to fail (exhausted tokens)")
	}

	if !limiter.Allow("10.0.0.2") {
		t.Errorf("expected allow for other key")
	}
}

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewLimiter(0, 1)

	for i := 0; i < 100; i++ {
		if !limiter.Allow("k") {
			t.Fatalf("request %d rejected by unlimited limiter", i)
		}
	}
}

func TestLimiter_Evict(t *testing.T) {
	limiter := NewLimiter(1, 1)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		limiter.Allow(fmt.Sprintf("1.2.3.%d", i))
	}

	now = now.Add(4 * time.Minute)
	if !limiter.Allow("10.0.0.1") {
		t.Fatal("expected fresh key to pass")
	}

	now = now.Add(2 * time.Minute)
	if removed := limiter.Evict(5 * time.Minute); removed != 100 {
		t.Errorf("expected 100 stale keys evicted, got %d", removed)
	}
	if limiter.Len() != 1 {
		t.Errorf("expected only the recent key to remain, got %d", limiter.Len())
	}

	// an evicted key starts over with a full bucket
	if !limiter.Allow("1.2.3.0") {
		t.Error("expected evicted key to get a new bucket")
	}
}

func TestLimiter_Janitor(t *testing.T) {
	limiter := NewLimiter(1, 1)
	limiter.Allow("stale")

	ctx, cancel := context.WithCancel(context.Background())
	swept := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		limiter.Janitor(ctx, 5*time.Millisecond, time.Nanosecond, func(removed, remaining int) {
			if removed > 0 {
				select {
				case swept <- remaining:
				default:
				}
			}
		})
		close(done)
	}()

	select {
	case remaining := <-swept:
		if remaining != 0 {
			t.Errorf("expected no keys left, got %d", remaining)
		}
	case <-time.After(time.Second):
		t.Fatal("janitor never evicted the stale key")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop on cancel")
	}
}

func TestLimiter_JanitorDisabled(t *testing.T) {
	limiter := NewLimiter(1, 1)

	done := make(chan struct{})
	go func() {
		limiter.Janitor(context.Background(), 0, time.Minute, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected janitor to return immediately without an interval")
	}
}
