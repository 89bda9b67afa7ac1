package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverallStatus(t *testing.T) {
	t.Run("no entries reads as New", func(t *testing.T) {
		task := TaskItem{Name: "wiring"}
		assert.Equal(t, StatusNew, OverallStatus(task))
	})

	t.Run("latest date wins regardless of insertion order", func(t *testing.T) {
		// five day task, entries recorded out of order
		task := TaskItem{StartDate: d("2024-01-01"), DurationDays: 5}
		st := func(s Status) *Status { return &s }

		UpsertDay(&task, d("2024-01-01"), st(StatusNew))
		UpsertDay(&task, d("2024-01-03"), st(StatusInProgress))
		UpsertDay(&task, d("2024-01-02"), st(StatusDone))

		assert.Equal(t, StatusInProgress, OverallStatus(task))
	})

	t.Run("stale last entry is returned without decay", func(t *testing.T) {
		task := TaskItem{StartDate: d("2023-06-01"), DurationDays: 3}
		s := StatusDone
		UpsertDay(&task, d("2023-06-02"), &s)
		assert.Equal(t, StatusDone, OverallStatus(task))
	})
}

func TestUpsertDay(t *testing.T) {
	st := func(s Status) *Status { return &s }

	t.Run("replaces the entry for an existing date", func(t *testing.T) {
		task := TaskItem{}
		UpsertDay(&task, d("2024-02-10"), st(StatusNew))
		UpsertDay(&task, d("2024-02-10"), st(StatusDelayed))

		require.Len(t, task.Days, 1)
		assert.Equal(t, StatusDelayed, task.Days[0].Status)
	})

	t.Run("nil status removes the entry", func(t *testing.T) {
		task := TaskItem{}
		UpsertDay(&task, d("2024-02-10"), st(StatusDone))
		UpsertDay(&task, d("2024-02-11"), st(StatusNew))
		UpsertDay(&task, d("2024-02-10"), nil)

		require.Len(t, task.Days, 1)
		assert.True(t, task.Days[0].Day.Equal(d("2024-02-11")))
	})

	t.Run("removing an absent date is a no-op", func(t *testing.T) {
		task := TaskItem{}
		UpsertDay(&task, d("2024-02-10"), nil)
		assert.Empty(t, task.Days)
	})

	t.Run("timestamps on the same calendar day collide", func(t *testing.T) {
		task := TaskItem{}
		morning := time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)
		evening := time.Date(2024, 3, 5, 21, 0, 0, 0, time.UTC)
		UpsertDay(&task, morning, st(StatusNew))
		UpsertDay(&task, evening, st(StatusDone))

		require.Len(t, task.Days, 1)
		assert.Equal(t, StatusDone, task.Days[0].Status)
	})
}

func TestInRange(t *testing.T) {
	task := TaskItem{StartDate: d("2024-01-10"), DurationDays: 3}

	assert.False(t, InRange(task, d("2024-01-09")))
	assert.True(t, InRange(task, d("2024-01-10")))
	assert.True(t, InRange(task, d("2024-01-12")))
	assert.False(t, InRange(task, d("2024-01-13")))

	t.Run("duration below one day never matches", func(t *testing.T) {
		zero := TaskItem{StartDate: d("2024-01-10"), DurationDays: 0}
		assert.False(t, InRange(zero, d("2024-01-10")))
	})
}
