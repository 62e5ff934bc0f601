package main

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ConflictError is a scheduling rejection from the validator: the proposed
// slot collides with an existing activity on the same date.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// ValidationError reports malformed or incomplete input. Nothing is persisted
// when one is returned.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// parseClock converts an "HH:MM" string into minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// timeOverlaps reports whether [startA, endA) and [startB, endB) intersect on
// the same calendar date. An end time that is not strictly after its start is
// clamped to 23:59 before comparing; activities are assumed not to cross
// midnight. Touching intervals do not overlap.
func timeOverlaps(startA, endA, startB, endB string) bool {
	sa, err1 := parseClock(startA)
	ea, err2 := parseClock(endA)
	sb, err3 := parseClock(startB)
	eb, err4 := parseClock(endB)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return false
	}

	const endOfDay = 23*60 + 59
	if ea <= sa {
		ea = endOfDay
	}
	if eb <= sb {
		eb = endOfDay
	}

	return sa < eb && sb < ea
}

// normalizeParticipants splits a comma-separated participant field into a set
// of trimmed, lower-cased name tokens. Empty tokens are dropped.
func normalizeParticipants(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			set[tok] = struct{}{}
		}
	}
	return set
}

func setsIntersect(a, b map[string]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}

// validateSchedule checks a candidate activity against every stored activity
// on the same date. excludeID skips the activity being edited so it never
// conflicts with itself. Two rules apply to each time-overlapping candidate,
// in order: same leader double-booked, then overlapping participant sets.
// The first conflicting candidate in retrieval order determines the reason.
//
// Returns nil when the slot is free, a *ConflictError on a collision, or the
// underlying storage error. Read-only: performs no writes.
func validateSchedule(date, start, end string, leaderID *uint, participantsRaw string, excludeID *uint) error {
	query := DB.Where("date = ?", date)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var candidates []Activity
	if err := query.Find(&candidates).Error; err != nil {
		return fmt.Errorf("could not load activities for %s: %w", date, err)
	}

	participants := normalizeParticipants(participantsRaw)

	for _, cand := range candidates {
		if !timeOverlaps(start, end, cand.StartTime, cand.EndTime) {
			continue
		}

		if leaderID != nil && cand.LeaderID != nil && *leaderID == *cand.LeaderID {
			return &ConflictError{Reason: fmt.Sprintf(
				"leader '%s' is already scheduled at %s-%s",
				leaderNameByID(*leaderID), cand.StartTime, cand.EndTime)}
		}

		if len(participants) > 0 && setsIntersect(participants, normalizeParticipants(cand.Participants)) {
			return &ConflictError{Reason: fmt.Sprintf(
				"some participants are already scheduled at %s-%s",
				cand.StartTime, cand.EndTime)}
		}
	}

	return nil
}
