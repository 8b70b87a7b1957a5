package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func TestOpensAfterFailureThreshold(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		FailureThreshold:    2,
		SuccessThreshold:    1,
		Timeout:             time.Minute,
		HalfOpenMaxRequests: 1,
	})

	fail := func() error { return errBoom }

	if err := cb.Execute(fail); !errors.Is(err, errBoom) {
		t.Fatalf("first failure: err = %v", err)
	}
	if err := cb.Execute(fail); !errors.Is(err, errBoom) {
		t.Fatalf("second failure: err = %v", err)
	}

	// Threshold reached: the next call is rejected without running fn.
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	if !errors.Is(err, ErrCircuitBreakerOpen) {
		t.Fatalf("err = %v, want ErrCircuitBreakerOpen", err)
	}
	if called {
		t.Fatal("fn must not run while the breaker is open")
	}
	if got := cb.GetState(); got != StateOpen {
		t.Fatalf("state = %v, want StateOpen", got)
	}
}

func TestHalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		FailureThreshold:    1,
		SuccessThreshold:    1,
		Timeout:             10 * time.Millisecond,
		HalfOpenMaxRequests: 1,
	})

	if err := cb.Execute(func() error { return errBoom }); !errors.Is(err, errBoom) {
		t.Fatalf("err = %v", err)
	}
	if err := cb.Execute(func() error { return nil }); !errors.Is(err, ErrCircuitBreakerOpen) {
		t.Fatalf("err = %v, want ErrCircuitBreakerOpen", err)
	}

	time.Sleep(20 * time.Millisecond)

	// Timeout elapsed: one trial request is let through; its success closes
	// the breaker again.
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("trial request failed: %v", err)
	}
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("post-recovery request failed: %v", err)
	}
	if got := cb.GetState(); got != StateClosed {
		t.Fatalf("state = %v, want StateClosed", got)
	}
}

func TestResetClosesBreaker(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		FailureThreshold:    1,
		SuccessThreshold:    1,
		Timeout:             time.Minute,
		HalfOpenMaxRequests: 1,
	})

	_ = cb.Execute(func() error { return errBoom })
	if err := cb.Execute(func() error { return nil }); !errors.Is(err, ErrCircuitBreakerOpen) {
		t.Fatalf("err = %v, want ErrCircuitBreakerOpen", err)
	}

	cb.Reset()

	if got := cb.GetState(); got != StateClosed {
		t.Fatalf("state after reset = %v, want StateClosed", got)
	}
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("request after reset failed: %v", err)
	}
}
