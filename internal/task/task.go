// Package task defines the task model and the persisted task store.
package task

import (
	"errors"
	"strings"

	"github.com/javiermolinar/daystrip/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyTitle   = errors.New("title cannot be empty")
	ErrInvalidDate  = errors.New("task date is missing or invalid")
	ErrTaskNotFound = errors.New("task not found")
)

// Task is a dated to-do item.
type Task struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Completed   bool          `json:"completed"`
	Date        dateutil.Date `json:"date"`
}

// Draft holds the fields of a task to be created.
// A zero Date means today.
type Draft struct {
	Title       string
	Description string
	Completed   bool
	Date        dateutil.Date
}

// Patch holds optional field updates. Nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	Completed   *bool
	Date        *dateutil.Date
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil && p.Date == nil
}

// NormalizeTitle trims a title and rejects empty or whitespace-only input.
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	return title, nil
}

// Validate checks the draft and returns it with the title trimmed.
func (d Draft) Validate() (Draft, error) {
	title, err := NormalizeTitle(d.Title)
	if err != nil {
		return d, err
	}
	d.Title = title
	return d, nil
}

// apply returns t with the patch applied. The title must already be normalized.
func (p Patch) apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Date != nil && !p.Date.IsZero() {
		t.Date = *p.Date
	}
	return t
}

// valid reports whether a loaded task can be kept.
func (t Task) valid() bool {
	return strings.TrimSpace(t.Title) != "" && !t.Date.IsZero()
}

// less orders tasks by date, then id.
func less(a, b Task) int {
	if a.Date.Before(b.Date) {
		return -1
	}
	if a.Date.After(b.Date) {
		return 1
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}

// String returns the title.
func (t Task) String() string {
	return t.Title
}

// Ptr returns a pointer to v. It is a convenience for building Patches.
func Ptr[T any](v T) *T {
	return &v
}
