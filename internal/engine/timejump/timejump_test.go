package timejump

import "testing"

func TestControllerStartsNormal(t *testing.T) {
	c := NewController(0)
	if c.State() != Normal || c.Progress() != 0 || c.Engaged() {
		t.Errorf("fresh controller: state %v progress %v", c.State(), c.Progress())
	}
	if c.speed != DefaultSpeed {
		t.Errorf("speed = %v", c.speed)
	}
	if ev := c.Update(1); ev != None {
		t.Errorf("idle update fired %v", ev)
	}
}

func TestSwapHappensOnceAtMidpoint(t *testing.T) {
	c := NewController(6)
	c.Toggle()

	swaps := 0
	crossedAt := float32(-1)
	for i := 0; i < 120; i++ {
		before := c.Progress()
		switch c.Update(1.0 / 60) {
		case Swapped:
			swaps++
			crossedAt = c.Progress()
			if before > Midpoint {
				t.Errorf("swap late: progress was already %v", before)
			}
		case Reverted:
			t.Fatal("unexpected revert while engaged")
		}
	}
	if swaps != 1 {
		t.Fatalf("swaps = %d, want 1", swaps)
	}
	if crossedAt <= Midpoint {
		t.Errorf("swapped at %v, want > 0.5", crossedAt)
	}
	if c.State() != Transitioned {
		t.Errorf("state = %v", c.State())
	}
	if c.Progress() < 0.99 {
		t.Errorf("progress = %v after 2s", c.Progress())
	}
}

func TestRevertAfterToggleBack(t *testing.T) {
	c := NewController(6)
	c.Toggle()
	for i := 0; i < 60; i++ {
		c.Update(1.0 / 30)
	}

	if c.Toggle() {
		t.Fatal("second toggle should disengage")
	}
	reverts := 0
	for i := 0; i < 60; i++ {
		if c.Update(1.0/30) == Reverted {
			reverts++
			if c.Progress() >= Midpoint {
				t.Errorf("reverted at %v", c.Progress())
			}
		}
	}
	if reverts != 1 || c.State() != Normal {
		t.Errorf("reverts = %d, state = %v", reverts, c.State())
	}
}

func TestToggleBackBeforeMidpointNeverSwaps(t *testing.T) {
	c := NewController(6)
	c.Toggle()
	// One 1/60 s step: progress = 0.1.
	if ev := c.Update(1.0 / 60); ev != None {
		t.Fatalf("early event %v", ev)
	}
	c.Toggle()
	for i := 0; i < 100; i++ {
		if ev := c.Update(1.0 / 60); ev != None {
			t.Fatalf("event %v after aborting", ev)
		}
	}
	if c.State() != Normal {
		t.Errorf("state = %v", c.State())
	}
}

func TestLargeStepClampsToTarget(t *testing.T) {
	c := NewController(6)
	c.Toggle()
	if ev := c.Update(10); ev != Swapped {
		t.Errorf("event = %v, want Swapped", ev)
	}
	if c.Progress() != 1 {
		t.Errorf("progress = %v, want 1", c.Progress())
	}
}

func TestNonPositiveStepHoldsProgress(t *testing.T) {
	c := NewController(6)
	c.Toggle()
	c.Update(0)
	c.Update(-1)
	if c.Progress() != 0 {
		t.Errorf("progress = %v", c.Progress())
	}
}

func TestStateString(t *testing.T) {
	if Normal.String() != "normal" || Transitioned.String() != "transitioned" {
		t.Error("State.String mismatch")
	}
}
