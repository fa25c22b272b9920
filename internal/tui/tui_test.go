package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/taskboard/internal/model"
	"github.com/idilsaglam/taskboard/internal/storage"
	"github.com/idilsaglam/taskboard/internal/taskstore"
	"github.com/idilsaglam/taskboard/internal/themestore"
)

func newModel(t *testing.T, titles ...string) (Model, *taskstore.Store, *themestore.Store) {
	t.Helper()
	kv := storage.NewMemory(nil)
	n := 0
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tasks, err := taskstore.New(kv,
		taskstore.WithIDGenerator(func() string { n++; return fmt.Sprintf("task-%02d", n) }),
		taskstore.WithClock(func() time.Time { clock = clock.Add(time.Minute); return clock }),
	)
	if err != nil {
		t.Fatal(err)
	}
	for _, title := range titles {
		if _, err := tasks.Create(model.TaskInput{Title: title, Priority: model.PriorityLow}); err != nil {
			t.Fatal(err)
		}
	}
	theme, err := themestore.New(kv, themestore.StaticPreference(false))
	if err != nil {
		t.Fatal(err)
	}
	return New(tasks, theme, true), tasks, theme
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	space = keys(" ")
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

// send feeds messages through Update and returns the resulting model.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("unexpected model type %T", next)
		}
	}
	return m
}

func visibleTitles(m Model) []string {
	var out []string
	for _, it := range m.list.Items() {
		out = append(out, it.(listItem).task.Title)
	}
	return out
}

func TestNew_ListsMostRecentFirst(t *testing.T) {
	m, _, _ := newModel(t, "first", "second")
	got := visibleTitles(m)
	if len(got) != 2 || got[0] != "second" {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestToggleSelected(t *testing.T) {
	m, tasks, _ := newModel(t, "only")
	m = send(t, m, space)

	task, _ := tasks.Get("task-01")
	if !task.Completed {
		t.Fatal("space should complete the selected task")
	}
	if !strings.Contains(m.status, "completed") {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestDeleteSelected(t *testing.T) {
	m, tasks, _ := newModel(t, "first", "second")
	m = send(t, m, keys("d"))

	if _, ok := tasks.Get("task-02"); ok {
		t.Fatal("selected task should be deleted")
	}
	if got := visibleTitles(m); len(got) != 1 || got[0] != "first" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestAddTask(t *testing.T) {
	m, tasks, _ := newModel(t)
	m = send(t, m, keys("a"))
	if m.mode != modeAdd {
		t.Fatal("expected add mode")
	}

	// Empty title is rejected and stays in add mode.
	m = send(t, m, enter)
	if m.mode != modeAdd || !m.failed {
		t.Fatal("empty title should be rejected")
	}

	m = send(t, m, keys("Buy milk"), enter)
	if m.mode != modeBrowse {
		t.Fatal("expected browse mode after submit")
	}
	all := tasks.Tasks()
	if len(all) != 1 || all[0].Title != "Buy milk" || all[0].Priority != model.PriorityMedium {
		t.Fatalf("unexpected tasks %+v", all)
	}
}

func TestEditTask(t *testing.T) {
	m, tasks, _ := newModel(t, "old")
	m = send(t, m, keys("e"))
	if m.ti.Value() != "old" {
		t.Fatalf("expected input prefilled, got %q", m.ti.Value())
	}
	m.ti.SetValue("")
	m = send(t, m, keys("new"), enter)

	task, _ := tasks.Get("task-01")
	if task.Title != "new" {
		t.Fatalf("expected new title, got %q", task.Title)
	}
}

func TestEscCancelsInput(t *testing.T) {
	m, tasks, _ := newModel(t)
	m = send(t, m, keys("a"), keys("x"), esc)
	if m.mode != modeBrowse || len(tasks.Tasks()) != 0 {
		t.Fatal("esc should cancel without creating")
	}
}

func TestSearchAndReset(t *testing.T) {
	m, tasks, _ := newModel(t, "Buy milk", "Fix bug")
	m = send(t, m, keys("/"), keys("BUG"), enter)

	if tasks.Filter().SearchTerm != "BUG" {
		t.Fatalf("unexpected filter %+v", tasks.Filter())
	}
	if got := visibleTitles(m); len(got) != 1 || got[0] != "Fix bug" {
		t.Fatalf("unexpected list %v", got)
	}
	if !strings.Contains(ansi.Strip(m.list.Title), `filter: "BUG"`) {
		t.Errorf("title should mention the filter: %q", m.list.Title)
	}

	m = send(t, m, keys("c"))
	if !tasks.Filter().IsDefault() || len(visibleTitles(m)) != 2 {
		t.Fatal("c should reset the filter")
	}
}

func TestStatusAndPriorityCycle(t *testing.T) {
	m, tasks, _ := newModel(t, "a", "b")
	m = send(t, m, space) // complete "b"

	m = send(t, m, keys("s"))
	if tasks.Filter().Status != model.StatusActive {
		t.Fatalf("expected active, got %q", tasks.Filter().Status)
	}
	if got := visibleTitles(m); len(got) != 1 || got[0] != "a" {
		t.Fatalf("unexpected list %v", got)
	}

	m = send(t, m, keys("s"), keys("s"))
	if tasks.Filter().Status != model.StatusAll {
		t.Fatalf("expected wrap to all, got %q", tasks.Filter().Status)
	}

	m = send(t, m, keys("p"))
	if tasks.Filter().Priority != model.PriorityLow {
		t.Fatalf("expected low, got %q", tasks.Filter().Priority)
	}

	// esc clears an active filter before quitting.
	m = send(t, m, esc)
	if !tasks.Filter().IsDefault() {
		t.Fatal("esc should reset the filter")
	}
}

func TestToggleTheme(t *testing.T) {
	m, _, theme := newModel(t)
	m = send(t, m, keys("t"))
	if !theme.IsDark() {
		t.Fatal("t should toggle the theme")
	}
	if m.status != "theme dark" {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newModel(t)
	_, cmd := m.Update(keys("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestView(t *testing.T) {
	m, _, _ := newModel(t, "Buy milk")
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Buy milk") || !strings.Contains(view, "Tasks") {
		t.Fatalf("unexpected view:\n%s", view)
	}

	m = send(t, m, keys("a"))
	if !strings.Contains(ansi.Strip(m.View()), "Add task") {
		t.Fatal("expected input box in view")
	}
}

func TestCycle(t *testing.T) {
	if got := cycle(priorityCycle, model.PriorityHigh); got != "" {
		t.Errorf("expected wrap to empty, got %q", got)
	}
	if got := cycle(statusCycle, model.Status("bogus")); got != model.StatusAll {
		t.Errorf("expected first value for unknown, got %q", got)
	}
}
