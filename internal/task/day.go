package task

import (
	"slices"

	"github.com/javiermolinar/daystrip/internal/dateutil"
)

// DayMarks counts the tasks of a day for the strip's presence indicators.
type DayMarks struct {
	Completed int
	Pending   int
}

// Total returns the number of tasks.
func (m DayMarks) Total() int {
	return m.Completed + m.Pending
}

// HasTasks reports whether the day has any task.
func (m DayMarks) HasTasks() bool {
	return m.Total() > 0
}

// Day holds all tasks for a single date.
type Day struct {
	Date  dateutil.Date
	tasks []Task // sorted by ID
}

// NewDay creates a Day from tasks. Tasks on other dates are ignored.
func NewDay(date dateutil.Date, tasks []Task) *Day {
	d := &Day{Date: date, tasks: make([]Task, 0, len(tasks))}
	for _, t := range tasks {
		if t.Date.Equal(date) {
			d.tasks = append(d.tasks, t)
		}
	}
	slices.SortFunc(d.tasks, less)
	return d
}

// Tasks returns a copy of the task slice.
func (d *Day) Tasks() []Task {
	return slices.Clone(d.tasks)
}

// Len returns the number of tasks.
func (d *Day) Len() int {
	return len(d.tasks)
}

// Marks returns the completed and pending counts.
func (d *Day) Marks() DayMarks {
	return marksOf(d.tasks)
}

// GroupByDay groups tasks into Days in date order.
func GroupByDay(tasks []Task) []*Day {
	sorted := slices.Clone(tasks)
	slices.SortFunc(sorted, less)

	var days []*Day
	for _, t := range sorted {
		if len(days) == 0 || !days[len(days)-1].Date.Equal(t.Date) {
			days = append(days, &Day{Date: t.Date})
		}
		last := days[len(days)-1]
		last.tasks = append(last.tasks, t)
	}
	return days
}

func marksOf(tasks []Task) DayMarks {
	var m DayMarks
	for _, t := range tasks {
		if t.Completed {
			m.Completed++
		} else {
			m.Pending++
		}
	}
	return m
}
