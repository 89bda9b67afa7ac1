package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskWithStatus(name string, s Status) TaskItem {
	task := TaskItem{Name: name, StartDate: d("2024-01-01"), DurationDays: 5}
	UpsertDay(&task, d("2024-01-02"), &s)
	return task
}

func TestCompileReport(t *testing.T) {
	now := d("2024-03-01")

	t.Run("classifies tasks and rounds progress half-up", func(t *testing.T) {
		tasks := []TaskItem{
			taskWithStatus("order fixtures", StatusDone),
			taskWithStatus("ceiling wiring", StatusDone),
			taskWithStatus("site survey", StatusDelayed),
			taskWithStatus("install rails", StatusInProgress),
		}
		p := Project{Code: "PRJ-001", Name: "Showroom D7", Status: ProjectActive, StartDate: d("2024-01-01")}

		r := CompileReport(p, tasks, nil, nil, now)

		assert.Equal(t, 2, r.TaskCompleted)
		assert.Equal(t, 1, r.TaskDelayed)
		assert.Equal(t, 1, r.TaskActive)
		assert.Equal(t, 50, r.ProgressPercent)
	})

	t.Run("one of three done rounds to 33", func(t *testing.T) {
		tasks := []TaskItem{
			taskWithStatus("a", StatusDone),
			taskWithStatus("b", StatusInProgress),
			{Name: "c"},
		}
		r := CompileReport(Project{Status: ProjectActive, StartDate: d("2024-01-01")}, tasks, nil, nil, now)
		assert.Equal(t, 33, r.ProgressPercent)
	})

	t.Run("no tasks means zero progress", func(t *testing.T) {
		r := CompileReport(Project{Status: ProjectDraft, StartDate: d("2024-01-01")}, nil, nil, nil, now)
		assert.Equal(t, 0, r.ProgressPercent)
		assert.Equal(t, 0, r.TaskActive)
		assert.Empty(t, r.Issues)
	})

	t.Run("issues list delayed tasks and falls back to untitled", func(t *testing.T) {
		tasks := []TaskItem{
			taskWithStatus("order fixtures", StatusDelayed),
			taskWithStatus("", StatusDelayed),
		}
		r := CompileReport(Project{Status: ProjectActive, StartDate: d("2024-01-01")}, tasks, nil, nil, now)

		require.Len(t, r.Issues, 2)
		assert.Equal(t, "task delayed: order fixtures", r.Issues[0])
		assert.Equal(t, "task delayed: untitled", r.Issues[1])
	})

	t.Run("overdue project adds an issue unless closed", func(t *testing.T) {
		end := d("2024-02-15")

		open := Project{Status: ProjectActive, StartDate: d("2024-01-01"), EndDate: &end}
		r := CompileReport(open, nil, nil, nil, now)
		require.Len(t, r.Issues, 1)
		assert.Equal(t, "project overdue", r.Issues[0])

		for _, status := range []string{ProjectDone, ProjectDelivered} {
			closed := Project{Status: status, StartDate: d("2024-01-01"), EndDate: &end}
			r := CompileReport(closed, nil, nil, nil, now)
			assert.Empty(t, r.Issues, "status %s suppresses overdue", status)
		}
	})

	t.Run("end date today is not overdue", func(t *testing.T) {
		end := now
		p := Project{Status: ProjectActive, StartDate: d("2024-01-01"), EndDate: &end}
		r := CompileReport(p, nil, nil, nil, now)
		assert.Empty(t, r.Issues)
	})

	t.Run("copies project fields and cost aggregates", func(t *testing.T) {
		budget := decimal.RequireFromString("10000000")
		end := d("2024-06-30")
		p := Project{
			Code:         "PRJ-017",
			Name:         "Hotel lobby relight",
			CustomerName: "Song Han Hotel",
			Status:       ProjectActive,
			StartDate:    d("2024-01-15"),
			EndDate:      &end,
			Budget:       &budget,
		}
		products := []ProjectProduct{{Total: decimal.RequireFromString("6000000")}}
		expenses := []ProjectExpense{{Amount: decimal.RequireFromString("3500000")}}

		r := CompileReport(p, nil, products, expenses, now)

		assert.Equal(t, "PRJ-017", r.Code)
		assert.Equal(t, "Song Han Hotel", r.CustomerName)
		assert.Equal(t, "2024-01-15", r.StartDate)
		assert.Equal(t, "2024-06-30", r.EndDate)
		assert.True(t, r.ActualAllIn.Equal(decimal.RequireFromString("9500000")))
		assert.True(t, r.Variance.Equal(decimal.RequireFromString("500000")))
		assert.True(t, r.ProfitApprox.Equal(decimal.RequireFromString("2500000")))
	})

	t.Run("overdue compares calendar dates in UTC", func(t *testing.T) {
		// 2024-02-29 23:30 UTC-7 is already 2024-03-01 in UTC
		loc := time.FixedZone("UTC-7", -7*3600)
		local := time.Date(2024, 2, 29, 23, 30, 0, 0, loc)
		end := d("2024-02-29")

		p := Project{Status: ProjectActive, StartDate: d("2024-01-01"), EndDate: &end}
		r := CompileReport(p, nil, nil, nil, local)
		require.Len(t, r.Issues, 1)
	})
}
