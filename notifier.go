package main

import (
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// notifyLookahead is how far ahead of an activity's start the notification
// window opens.
const notifyLookahead = 15 * time.Minute

// Notifier watches the store for activities about to start. A background
// sweep runs once per minute and announces each qualifying activity exactly
// once, tracked in a private seen set. The UI pulls the same window through
// Upcoming and records dismissals through Acknowledge; both sets are cleared
// when the dataset is refreshed.
//
// The notifier only reads activity data; it never mutates the store.
type Notifier struct {
	mu        sync.Mutex
	announced map[uint]struct{}
	acked     map[uint]struct{}
	runner    *cron.Cron
	now       func() time.Time
}

func NewNotifier() *Notifier {
	return &Notifier{
		announced: make(map[uint]struct{}),
		acked:     make(map[uint]struct{}),
		now:       time.Now,
	}
}

// Start schedules the background sweep once per minute.
func (n *Notifier) Start() {
	n.runner = cron.New()
	n.runner.AddFunc("@every 1m", n.sweep)
	n.runner.Start()
}

// Stop halts the background sweep. Safe to call when Start was never called.
func (n *Notifier) Stop() {
	if n.runner != nil {
		n.runner.Stop()
	}
}

// windowActivities returns activities whose start lies within the lookahead
// window from now: already past the (start - lookahead) mark but not yet
// started.
func (n *Notifier) windowActivities() ([]ActivityDetail, error) {
	all, err := ListActivities(nil)
	if err != nil {
		return nil, err
	}

	now := n.now()
	var upcoming []ActivityDetail
	for _, a := range all {
		start, err := time.ParseInLocation(dateLayout+" "+timeLayout, a.Date+" "+a.StartTime, now.Location())
		if err != nil {
			continue
		}
		if !now.Before(start.Add(-notifyLookahead)) && now.Before(start) {
			upcoming = append(upcoming, a)
		}
	}
	return upcoming, nil
}

func (n *Notifier) sweep() {
	list, err := n.windowActivities()
	if err != nil {
		log.Printf("notification sweep failed: %v", err)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	for _, a := range list {
		if _, ok := n.announced[a.ID]; ok {
			continue
		}
		log.Printf("upcoming activity %d: %s (%s %s-%s)",
			a.ID, a.Description, a.Date, a.StartTime, a.EndTime)
		n.announced[a.ID] = struct{}{}
	}
}

// Upcoming is the pull-style query for the UI: activities starting within the
// lookahead window that have not been acknowledged yet.
func (n *Notifier) Upcoming() ([]ActivityDetail, error) {
	list, err := n.windowActivities()
	if err != nil {
		return nil, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	result := make([]ActivityDetail, 0, len(list))
	for _, a := range list {
		if _, ok := n.acked[a.ID]; ok {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

// Acknowledge records that the UI has shown the notification for an activity.
func (n *Notifier) Acknowledge(id uint) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.acked[id] = struct{}{}
}

// Reset clears both tracking sets. Called whenever the dataset is explicitly
// refreshed, e.g. after a bulk import.
func (n *Notifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.announced = make(map[uint]struct{})
	n.acked = make(map[uint]struct{})
}
