package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Priority ranks a task. The zero value means "unset" and is only
// meaningful inside a Filter.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority validates user input. Matching is case-insensitive.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", fmt.Errorf("invalid priority %q (want low, medium or high)", s)
}

// Task is the domain model for a task entry. The JSON layout is the
// persisted format under the "tasks" key.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Priority    Priority  `json:"priority"`
	Tags        []string  `json:"tags"`
	DueDate     *string   `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TimeLayout is the persisted timestamp format: UTC with exactly three
// fractional digits, so ".000" is kept.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// MarshalJSON writes timestamps in TimeLayout. Decoding uses the default
// time.Time parser, which accepts any RFC 3339 fraction.
func (t Task) MarshalJSON() ([]byte, error) {
	type plain Task
	return json.Marshal(struct {
		plain
		CreatedAt string `json:"createdAt"`
		UpdatedAt string `json:"updatedAt"`
	}{
		plain:     plain(t),
		CreatedAt: t.CreatedAt.UTC().Format(TimeLayout),
		UpdatedAt: t.UpdatedAt.UTC().Format(TimeLayout),
	})
}

// Clone returns a copy that shares no slices or pointers with t.
func (t Task) Clone() Task {
	c := t
	c.Tags = append([]string{}, t.Tags...)
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return c
}

// HasTag reports whether tag is one of the task's tags.
func (t Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// TaskInput carries everything a caller supplies when creating a task.
// Identifier and timestamps are assigned by the store.
type TaskInput struct {
	Title       string
	Description string
	Completed   bool
	Priority    Priority
	Tags        []string
	DueDate     *string
}

// TaskPatch is a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title        *string
	Description  *string
	Completed    *bool
	Priority     *Priority
	Tags         *[]string
	DueDate      *string
	ClearDueDate bool
}

// Apply merges the patch onto t. Timestamps are the caller's business.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Tags != nil {
		t.Tags = append([]string{}, (*p.Tags)...)
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
}

// Empty reports whether applying the patch would change nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.Priority == nil && p.Tags == nil && p.DueDate == nil && !p.ClearDueDate
}

// DateLayout is the accepted due date format.
const DateLayout = "2006-01-02"

// ParseDueDate checks s against DateLayout and returns it normalised.
func ParseDueDate(s string) (string, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", s)
	}
	return d.Format(DateLayout), nil
}

// Summarize counts completed and pending tasks.
func Summarize(tasks []Task) (done, pending int) {
	for _, t := range tasks {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
