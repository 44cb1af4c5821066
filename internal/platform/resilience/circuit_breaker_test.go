package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker("cricapi", CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
	})

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_DoIgnoresNonFailures(t *testing.T) {
	errBadRequest := errors.New("bad request")
	b := NewCircuitBreaker("anubis", CircuitBreakerConfig{Enabled: true, FailureThreshold: 1},
		WithFailurePredicate(func(err error) bool { return !errors.Is(err, errBadRequest) }),
	)

	for i := 0; i < 3; i++ {
		if err := b.Do(func() error { return errBadRequest }); !errors.Is(err, errBadRequest) {
			t.Fatalf("expected caller error passthrough, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("caller errors must not open the breaker, got %s", state)
	}

	_ = b.Do(func() error { return errors.New("timeout") })
	if err := b.Do(func() error { return nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open breaker to short-circuit, got %v", err)
	}
}

func TestCircuitBreaker_StateChangeHook(t *testing.T) {
	var transitions []string
	b := NewCircuitBreaker("cricapi", CircuitBreakerConfig{Enabled: true, FailureThreshold: 1},
		WithStateChange(func(name string, from, to CircuitState) {
			transitions = append(transitions, name+":"+string(from)+"->"+string(to))
		}),
	)

	b.RecordFailure()
	if len(transitions) != 1 || transitions[0] != "cricapi:closed->open" {
		t.Fatalf("unexpected transitions: %v", transitions)
	}
}

func TestCircuitBreaker_DisabledIsNil(t *testing.T) {
	b := NewCircuitBreaker("off", CircuitBreakerConfig{Enabled: false})
	if b != nil {
		t.Fatalf("disabled config must return nil breaker")
	}
	if err := b.Do(func() error { return nil }); err != nil {
		t.Fatalf("nil breaker must allow calls: %v", err)
	}
	if b.State() != CircuitStateClosed {
		t.Fatalf("nil breaker must report closed")
	}
}
