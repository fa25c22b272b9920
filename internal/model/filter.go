package model

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Status narrows tasks by completion state.
type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// ParseStatus validates user input. Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusAll, StatusActive, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("invalid status %q (want all, active or completed)", s)
}

// Filter is the transient set of predicates applied to the task list.
// It is never persisted.
type Filter struct {
	SearchTerm string
	Status     Status
	Priority   Priority // empty matches every priority
	Tags       []string // OR-matched
}

// DefaultFilter matches every task.
func DefaultFilter() Filter {
	return Filter{Status: StatusAll, Tags: []string{}}
}

// FilterPatch is a partial filter update. Nil fields keep their value.
type FilterPatch struct {
	SearchTerm *string
	Status     *Status
	Priority   *Priority
	Tags       *[]string
}

// Merge returns f with the patch applied.
func (f Filter) Merge(p FilterPatch) Filter {
	if p.SearchTerm != nil {
		f.SearchTerm = *p.SearchTerm
	}
	if p.Status != nil {
		f.Status = *p.Status
	}
	if p.Priority != nil {
		f.Priority = *p.Priority
	}
	if p.Tags != nil {
		f.Tags = append([]string{}, (*p.Tags)...)
	} else {
		f.Tags = append([]string{}, f.Tags...)
	}
	return f
}

// IsDefault reports whether the filter lets every task through.
func (f Filter) IsDefault() bool {
	return f.SearchTerm == "" && (f.Status == StatusAll || f.Status == "") &&
		f.Priority == "" && len(f.Tags) == 0
}

// Matches applies the predicates in order: search text, status,
// priority, tags.
func (f Filter) Matches(t Task) bool {
	if f.SearchTerm != "" {
		fold := cases.Fold()
		term := fold.String(f.SearchTerm)
		if !strings.Contains(fold.String(t.Title), term) &&
			!strings.Contains(fold.String(t.Description), term) {
			return false
		}
	}

	switch f.Status {
	case StatusActive:
		if t.Completed {
			return false
		}
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	}

	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}

	if len(f.Tags) > 0 && !slices.ContainsFunc(f.Tags, t.HasTag) {
		return false
	}
	return true
}

// FilterTasks returns copies of the tasks matching f, most recently
// updated first. The input slice is left untouched.
func FilterTasks(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t.Clone())
		}
	}
	slices.SortStableFunc(out, func(a, b Task) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out
}

// AvailableTags lists every distinct tag in first-seen order.
func AvailableTags(tasks []Task) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, t := range tasks {
		for _, tag := range t.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}
