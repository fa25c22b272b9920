// Package taskstore owns the task collection and the active filter.
//
// A Store is not safe for concurrent use: it is driven from a single
// goroutine (the CLI runner or the TUI update loop). Every mutation is
// written through to the KeyValue synchronously.
package taskstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/taskboard/internal/model"
	"github.com/idilsaglam/taskboard/internal/storage"
)

// StorageKey is where the task collection lives.
const StorageKey = "tasks"

var (
	// ErrNotFound is returned by Resolve when no task matches.
	ErrNotFound = errors.New("task not found")
	// ErrAmbiguous is returned by Resolve when a prefix matches several tasks.
	ErrAmbiguous = errors.New("ambiguous task reference")
)

// Store holds tasks in insertion order plus the transient filter.
type Store struct {
	kv     storage.KeyValue
	now    func() time.Time
	newID  func() string
	tasks  []model.Task
	filter model.Filter
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// New loads the collection from kv. A missing or empty entry yields an
// empty store; malformed JSON is an error.
func New(kv storage.KeyValue, opts ...Option) (*Store, error) {
	s := &Store{
		kv:     kv,
		now:    time.Now,
		newID:  uuid.NewString,
		tasks:  []model.Task{},
		filter: model.DefaultFilter(),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, ok, err := kv.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if ok && strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &s.tasks); err != nil {
			return nil, fmt.Errorf("load tasks: json unmarshal: %w", err)
		}
		if s.tasks == nil {
			s.tasks = []model.Task{}
		}
	}
	log.Printf("taskstore: loaded %d tasks", len(s.tasks))
	return s, nil
}

// Create stamps and appends a new task.
func (s *Store) Create(in model.TaskInput) (model.Task, error) {
	id := s.newID()
	for s.index(id) >= 0 {
		id = s.newID()
	}
	now := s.stamp(time.Time{})
	t := model.Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		Priority:    in.Priority,
		Tags:        append([]string{}, in.Tags...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.DueDate != nil {
		d := *in.DueDate
		t.DueDate = &d
	}
	s.tasks = append(s.tasks, t)
	log.Printf("taskstore: created %s", t.ID)
	return t.Clone(), s.save()
}

// Update merges patch into the task with the given id. An unknown id
// returns nil and leaves storage untouched.
func (s *Store) Update(id string, patch model.TaskPatch) (*model.Task, error) {
	i := s.index(id)
	if i < 0 {
		return nil, nil
	}
	t := &s.tasks[i]
	patch.Apply(t)
	t.UpdatedAt = s.stamp(t.UpdatedAt)
	log.Printf("taskstore: updated %s", id)

	out := t.Clone()
	return &out, s.save()
}

// Delete removes every task with the given id. Deleting an unknown id
// is not an error.
func (s *Store) Delete(id string) error {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	// Zero the tail so removed tasks are not retained by the backing array.
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = model.Task{}
	}
	if n := len(s.tasks) - len(kept); n > 0 {
		log.Printf("taskstore: deleted %s (%d)", id, n)
	}
	s.tasks = kept
	return s.save()
}

// Toggle flips the completion flag. Unknown ids are ignored.
func (s *Store) Toggle(id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	t := &s.tasks[i]
	t.Completed = !t.Completed
	t.UpdatedAt = s.stamp(t.UpdatedAt)
	log.Printf("taskstore: toggled %s completed=%t", id, t.Completed)
	return s.save()
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (model.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Resolve finds a task by full id or by a unique id prefix.
func (s *Store) Resolve(ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Task{}, ErrNotFound
	}
	if t, ok := s.Get(ref); ok {
		return t, nil
	}
	var found []int
	for i, t := range s.tasks {
		if strings.HasPrefix(t.ID, ref) {
			found = append(found, i)
		}
	}
	switch len(found) {
	case 0:
		return model.Task{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return s.tasks[found[0]].Clone(), nil
	default:
		return model.Task{}, fmt.Errorf("%w: %s matches %d tasks", ErrAmbiguous, ref, len(found))
	}
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Filter returns the active filter.
func (s *Store) Filter() model.Filter {
	return s.filter.Merge(model.FilterPatch{})
}

// SetFilter merges p into the active filter. Nothing is persisted.
func (s *Store) SetFilter(p model.FilterPatch) {
	s.filter = s.filter.Merge(p)
}

// ResetFilter restores the filter that matches everything.
func (s *Store) ResetFilter() {
	s.filter = model.DefaultFilter()
}

// AvailableTags lists distinct tags across all tasks.
func (s *Store) AvailableTags() []string {
	return model.AvailableTags(s.tasks)
}

// FilteredTasks applies the active filter, most recently updated first.
func (s *Store) FilteredTasks() []model.Task {
	return model.FilterTasks(s.tasks, s.filter)
}

func (s *Store) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// stamp returns the current time at millisecond precision, forced to be
// strictly after prev so consecutive mutations always order.
func (s *Store) stamp(prev time.Time) time.Time {
	now := s.now().UTC().Truncate(time.Millisecond)
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

func (s *Store) save() error {
	b, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("save tasks: json marshal: %w", err)
	}
	if err := s.kv.Set(StorageKey, string(b)); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
