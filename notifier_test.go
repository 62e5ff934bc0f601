package main

import (
	"testing"
	"time"
)

// fixedNotifier returns a notifier whose clock is pinned to 2025-06-01 08:50
// local time.
func fixedNotifier() (*Notifier, time.Time) {
	now := time.Date(2025, 6, 1, 8, 50, 0, 0, time.Local)
	n := NewNotifier()
	n.now = func() time.Time { return now }
	return n, now
}

func TestNotifierUpcomingWindow(t *testing.T) {
	setupTestDB(t)
	n, _ := fixedNotifier()

	soon := mustCreateActivity(t, Activity{
		Date: "2025-06-01", StartTime: "09:00", EndTime: "10:00",
		Description: "mulai sebentar lagi",
	})
	mustCreateActivity(t, Activity{
		Date: "2025-06-01", StartTime: "11:00", EndTime: "12:00",
		Description: "masih lama",
	})
	mustCreateActivity(t, Activity{
		Date: "2025-06-01", StartTime: "08:00", EndTime: "09:30",
		Description: "sudah berjalan",
	})
	mustCreateActivity(t, Activity{
		Date: "2025-06-02", StartTime: "09:00", EndTime: "10:00",
		Description: "besok",
	})

	list, err := n.Upcoming()
	if err != nil {
		t.Fatalf("upcoming failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != soon.ID {
		t.Fatalf("expected only the 09:00 activity, got %+v", list)
	}
}

func TestNotifierWindowBoundaries(t *testing.T) {
	setupTestDB(t)
	n, _ := fixedNotifier()

	// Exactly at the lookahead edge (08:50 + 15m = 09:05): included.
	edge := mustCreateActivity(t, Activity{
		Date: "2025-06-01", StartTime: "09:05", EndTime: "10:00",
		Description: "tepat di batas",
	})
	// Starting right now: the window is [start-15m, start), so excluded.
	mustCreateActivity(t, Activity{
		Date: "2025-06-01", StartTime: "08:50", EndTime: "09:30",
		Description: "mulai sekarang",
	})

	list, err := n.Upcoming()
	if err != nil {
		t.Fatalf("upcoming failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != edge.ID {
		t.Fatalf("window boundaries wrong, got %+v", list)
	}
}

func TestNotifierAcknowledgeAndReset(t *testing.T) {
	setupTestDB(t)
	n, _ := fixedNotifier()

	a := mustCreateActivity(t, Activity{
		Date: "2025-06-01", StartTime: "09:00", EndTime: "10:00",
		Description: "rapat",
	})

	n.Acknowledge(a.ID)
	list, err := n.Upcoming()
	if err != nil {
		t.Fatalf("upcoming failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("acknowledged activity still reported: %+v", list)
	}

	n.Reset()
	list, err = n.Upcoming()
	if err != nil {
		t.Fatalf("upcoming failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("reset did not clear acknowledgements: %+v", list)
	}
}

func TestNotifierSweepAnnouncesOnce(t *testing.T) {
	setupTestDB(t)
	n, _ := fixedNotifier()

	a := mustCreateActivity(t, Activity{
		Date: "2025-06-01", StartTime: "09:00", EndTime: "10:00",
		Description: "rapat",
	})

	n.sweep()
	n.sweep()

	n.mu.Lock()
	_, announced := n.announced[a.ID]
	size := len(n.announced)
	n.mu.Unlock()

	if !announced || size != 1 {
		t.Fatalf("sweep should announce exactly once: announced=%v size=%d", announced, size)
	}

	// The sweep's private state does not consume the UI-facing window.
	list, err := n.Upcoming()
	if err != nil {
		t.Fatalf("upcoming failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("sweep must not hide activities from Upcoming: %+v", list)
	}
}

func TestNotifierStopWithoutStart(t *testing.T) {
	n := NewNotifier()
	n.Stop()
}
