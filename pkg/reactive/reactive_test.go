package reactive

import (
	"errors"
	"testing"
)

func TestValueGetSet(t *testing.T) {
	v := NewValue(10)
	if v.Get() != 10 {
		t.Errorf("initial = %d, want 10", v.Get())
	}
	v.Set(20)
	if v.Get() != 20 {
		t.Errorf("after Set = %d, want 20", v.Get())
	}
}

func TestValueWatchersNotifiedSynchronously(t *testing.T) {
	v := NewValue("a")
	var gotOld, gotNew string
	calls := 0
	v.Watch(func(old, new string) {
		gotOld, gotNew = old, new
		calls++
	})

	v.Set("b")
	if calls != 1 || gotOld != "a" || gotNew != "b" {
		t.Errorf("watcher calls=%d old=%q new=%q", calls, gotOld, gotNew)
	}
}

func TestValueWatcherOrder(t *testing.T) {
	v := NewValue(0)
	var order []int
	v.Watch(func(_, _ int) { order = append(order, 1) })
	v.Watch(func(_, _ int) { order = append(order, 2) })

	v.Set(1)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("notification order = %v, want [1 2]", order)
	}
}

func TestValueUnwatch(t *testing.T) {
	v := NewValue(0)
	calls := 0
	cancel := v.Watch(func(_, _ int) { calls++ })

	v.Set(1)
	cancel()
	cancel() // idempotent
	v.Set(2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestValueUpdate(t *testing.T) {
	v := NewValue(3)
	v.Update(func(n int) int { return n * 2 })
	if v.Get() != 6 {
		t.Errorf("after Update = %d, want 6", v.Get())
	}
}

func TestDerivedLazyRecompute(t *testing.T) {
	computes := 0
	source := 1
	d := NewDerived(func() int {
		computes++
		return source * 10
	})

	if !d.Stale() {
		t.Error("new Derived should be stale")
	}
	if d.Get() != 10 || computes != 1 {
		t.Fatalf("Get = %d computes = %d", d.Get(), computes)
	}

	// Clean reads do not recompute.
	d.Get()
	d.Get()
	if computes != 1 {
		t.Errorf("clean reads recomputed: %d", computes)
	}

	// Invalidate marks stale; next read recomputes with fresh input.
	source = 2
	d.Invalidate()
	if !d.Stale() {
		t.Error("Invalidate should mark stale")
	}
	if d.Get() != 20 || computes != 2 {
		t.Errorf("Get = %d computes = %d", d.Get(), computes)
	}
}

func TestLifecycleStartStop(t *testing.T) {
	starts, stops := 0, 0
	l := NewLifecycle(
		func() error { starts++; return nil },
		func() { stops++ },
	)

	if l.Running() {
		t.Fatal("new lifecycle should not run")
	}
	if err := l.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !l.Running() || starts != 1 {
		t.Errorf("running=%v starts=%d", l.Running(), starts)
	}

	if err := l.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("double Start err = %v", err)
	}
	if starts != 1 {
		t.Errorf("double Start acquired again: %d", starts)
	}

	l.Stop()
	l.Stop() // idempotent
	if l.Running() || stops != 1 {
		t.Errorf("running=%v stops=%d", l.Running(), stops)
	}

	// Restartable after Stop.
	if err := l.Start(); err != nil || starts != 2 {
		t.Errorf("restart err=%v starts=%d", err, starts)
	}
}

func TestLifecycleStartError(t *testing.T) {
	wantErr := errors.New("no device")
	l := NewLifecycle(func() error { return wantErr }, nil)

	if err := l.Start(); !errors.Is(err, wantErr) {
		t.Fatalf("Start err = %v", err)
	}
	if l.Running() {
		t.Error("failed Start must not mark running")
	}
	l.Stop() // must be a safe no-op
}

func TestLifecycleStopBeforeStart(t *testing.T) {
	stops := 0
	l := NewLifecycle(nil, func() { stops++ })
	l.Stop()
	if stops != 0 {
		t.Errorf("Stop before Start released: %d", stops)
	}
}
