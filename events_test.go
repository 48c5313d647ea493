package mural

import "testing"

func TestEventLogTrimsAtCap(t *testing.T) {
	var l eventLog
	for i := 0; i < 1005; i++ {
		l.add(PaintEvent{Time: float64(i)})
	}

	got := l.recent()
	// The 1000th add trims to 500; five more follow.
	if len(got) != 505 {
		t.Fatalf("ring holds %d events, want 505", len(got))
	}
	// Oldest surviving event is the 501st added (Time 500).
	if got[0].Time != 500 {
		t.Errorf("oldest event Time = %v, want 500", got[0].Time)
	}
	if got[len(got)-1].Time != 1004 {
		t.Errorf("newest event Time = %v, want 1004", got[len(got)-1].Time)
	}
}

func TestEventLogNeverExceedsCap(t *testing.T) {
	var l eventLog
	for i := 0; i < 10000; i++ {
		l.add(PaintEvent{})
		if len(l.events) > eventLogCap {
			t.Fatalf("ring grew to %d, cap is %d", len(l.events), eventLogCap)
		}
	}
}
