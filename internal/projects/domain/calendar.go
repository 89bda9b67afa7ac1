package domain

import (
	"sort"
	"time"
)

// DateOnly truncates t to a calendar date in UTC. All task-day math
// runs on these normalized values so two timestamps on the same day
// always collide.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// UpsertDay records status for one date on the task, replacing any
// existing entry for that date. A nil status removes the entry.
// Insertion order is not maintained; consumers sort when they care.
func UpsertDay(t *TaskItem, day time.Time, status *Status) {
	day = DateOnly(day)

	if status == nil {
		for i := range t.Days {
			if t.Days[i].Day.Equal(day) {
				t.Days = append(t.Days[:i], t.Days[i+1:]...)
				return
			}
		}
		return
	}

	for i := range t.Days {
		if t.Days[i].Day.Equal(day) {
			t.Days[i].Status = *status
			return
		}
	}
	t.Days = append(t.Days, TaskDay{Day: day, Status: *status})
}

// OverallStatus derives a task's headline status: the status of its
// most recently dated entry, regardless of insertion order. A task
// with no entries reads as New (shown as "Pending"). No decay is
// applied when the last entry is older than today.
func OverallStatus(t TaskItem) Status {
	if len(t.Days) == 0 {
		return StatusNew
	}

	days := make([]TaskDay, len(t.Days))
	copy(days, t.Days)
	sort.Slice(days, func(i, j int) bool {
		return days[i].Day.Before(days[j].Day)
	})
	return days[len(days)-1].Status
}

// InRange reports whether day falls inside the task's nominal window
// [start, start+duration-1]. Used for calendar highlighting only; it
// never feeds status computation. A duration below one day yields an
// empty window.
func InRange(t TaskItem, day time.Time) bool {
	if t.DurationDays < 1 {
		return false
	}
	day = DateOnly(day)
	start := DateOnly(t.StartDate)
	end := start.AddDate(0, 0, t.DurationDays-1)
	return !day.Before(start) && !day.After(end)
}
