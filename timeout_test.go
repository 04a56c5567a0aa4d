package chainz

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"
)

func TestChain_WithTimeout_CompletesInTime(t *testing.T) {
	result, err := Map(
		From("fast", []int{1, 2, 3}).WithTimeout(time.Second),
		triple,
	).Collect(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !reflect.DeepEqual(result, []int{3, 6, 9}) {
		t.Errorf("Expected [3 6 9], got %v", result)
	}
}

func TestChain_WithTimeout_BoundsSlowClosures(t *testing.T) {
	// The closure ignores its context; the terminal must still return.
	chain := Map(
		From("slow", []int{1}).WithTimeout(20*time.Millisecond),
		func(_ context.Context, n int) (int, error) {
			time.Sleep(time.Second)
			return n, nil
		},
	)

	start := time.Now()
	result, err := chain.Collect(context.Background())
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("Expected timeout error, got nil")
	}
	if result != nil {
		t.Errorf("Expected nil result on timeout, got %v", result)
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("Expected terminal to return near the deadline, took %v", elapsed)
	}

	var cerr *Error[int]
	if !errors.As(err, &cerr) {
		t.Fatal("Expected error to be of type *chainz.Error[int]")
	}
	if !cerr.IsTimeout() {
		t.Errorf("Expected timeout error, got %v", cerr)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected wrapped deadline error, got %v", err)
	}
}

func TestChain_WithTimeout_CooperativeStagesStopEarly(t *testing.T) {
	var calls atomic.Int64
	chain := Map(
		FromAsync("cooperative", []int{1, 2, 3, 4, 5}).WithTimeout(20*time.Millisecond),
		func(_ context.Context, n int) (int, error) {
			calls.Add(1)
			time.Sleep(15 * time.Millisecond)
			return n, nil
		},
	)

	_, err := chain.Collect(context.Background())
	if err == nil {
		t.Fatal("Expected timeout error, got nil")
	}

	// Give a straggling invocation a moment to observe the deadline.
	time.Sleep(50 * time.Millisecond)
	if got := calls.Load(); got >= 5 {
		t.Errorf("Expected invocations to stop at the deadline, got %d calls", got)
	}
}
