// Package tui is the interactive task list. Every action goes straight
// through the stores, so nothing is pending when the program quits.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/taskboard/internal/model"
	"github.com/idilsaglam/taskboard/internal/taskstore"
	"github.com/idilsaglam/taskboard/internal/themestore"
	"github.com/idilsaglam/taskboard/internal/ui"
)

// listItem adapts model.Task to bubbles/list.Item
type listItem struct {
	task model.Task
}

func (i listItem) Title() string       { return i.task.Title }
func (i listItem) Description() string { return i.task.Description }
func (i listItem) FilterValue() string { return i.task.Title }

// Custom delegate to control how items render (single line)
type itemDelegate struct {
	pal ui.Palette
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.pal.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+ui.TaskLine(d.pal, it.task))
}

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeSearch
)

var (
	statusCycle   = []model.Status{model.StatusAll, model.StatusActive, model.StatusCompleted}
	priorityCycle = []model.Priority{"", model.PriorityLow, model.PriorityMedium, model.PriorityHigh}
)

// Model implements tea.Model over the task and theme stores.
type Model struct {
	tasks   *taskstore.Store
	theme   *themestore.Store
	noColor bool

	pal  ui.Palette
	list list.Model
	ti   textinput.Model // shared text input (add, edit, search)

	mode   mode
	editID string // task being edited
	status string // last message
	failed bool   // status is an error

	width, height int
}

// New builds the model and loads the current filtered view.
func New(tasks *taskstore.Store, theme *themestore.Store, noColor bool) Model {
	m := Model{tasks: tasks, theme: theme, noColor: noColor, width: 80, height: 24}
	m.pal = m.palette()

	l := list.New(nil, itemDelegate{pal: m.pal}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("task", "tasks")
	l.Styles.Title = m.pal.Title
	l.Styles.HelpStyle = m.pal.Help
	l.Styles.PaginationStyle = m.pal.Help

	bindings := []key.Binding{
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "priority")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filter")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return bindings[:4] }
	l.AdditionalFullHelpKeys = func() []key.Binding { return bindings }
	m.list = l

	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 200

	m.resize()
	m.refresh()
	return m
}

// Run starts the program on the alternate screen.
func Run(tasks *taskstore.Store, theme *themestore.Store, noColor bool) error {
	_, err := tea.NewProgram(New(tasks, theme, noColor), tea.WithAltScreen()).Run()
	return err
}

func (m Model) palette() ui.Palette {
	if m.noColor {
		return ui.Plain()
	}
	return ui.PaletteFor(m.theme.Theme())
}

// refresh reloads the filtered view, keeping the cursor on the same task
// when it is still visible.
func (m *Model) refresh() {
	var selected string
	if it, ok := m.list.SelectedItem().(listItem); ok {
		selected = it.task.ID
	}

	tasks := m.tasks.FilteredTasks()
	items := make([]list.Item, len(tasks))
	cursor := 0
	for i, t := range tasks {
		items[i] = listItem{task: t}
		if t.ID == selected {
			cursor = i
		}
	}
	m.list.SetItems(items)
	m.list.Select(cursor)
	m.list.Title = m.title()
}

func (m Model) title() string {
	t := ui.Header(m.pal, m.tasks.Tasks())
	f := m.tasks.Filter()
	if f.IsDefault() {
		return t
	}
	var parts []string
	if f.SearchTerm != "" {
		parts = append(parts, fmt.Sprintf("%q", f.SearchTerm))
	}
	if f.Status != model.StatusAll && f.Status != "" {
		parts = append(parts, string(f.Status))
	}
	if f.Priority != "" {
		parts = append(parts, string(f.Priority))
	}
	for _, tag := range f.Tags {
		parts = append(parts, "#"+tag)
	}
	return t + "  " + m.pal.Muted.Render("filter: "+strings.Join(parts, " "))
}

func (m *Model) resize() {
	h := m.height - 4
	if m.mode != modeBrowse {
		h -= 3
	}
	if m.status != "" {
		h--
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m *Model) report(err error, okMsg string) {
	if err != nil {
		m.status, m.failed = "error: "+err.Error(), true
		return
	}
	m.status, m.failed = okMsg, false
}

func (m Model) selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.task, ok
}

func (m *Model) openInput(md mode, value, placeholder string) tea.Cmd {
	m.mode = md
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	m.resize()
	return m.ti.Focus()
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.editID = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

// Update and View implement Bubble Tea's Model on Model
func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}
	if m.mode != modeBrowse {
		return m.updateInput(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch km.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.tasks.Filter().IsDefault() {
			return m, tea.Quit
		}
		m.tasks.ResetFilter()
		m.refresh()
		return m, nil
	case " ", "space":
		if t, ok := m.selected(); ok {
			verb := "completed"
			if t.Completed {
				verb = "reopened"
			}
			m.report(m.tasks.Toggle(t.ID), verb+" "+ui.ShortID(t.ID))
			m.refresh()
		}
		return m, nil
	case "d":
		if t, ok := m.selected(); ok {
			m.report(m.tasks.Delete(t.ID), "removed "+ui.ShortID(t.ID))
			m.refresh()
		}
		return m, nil
	case "a":
		cmd := m.openInput(modeAdd, "", "New task title...")
		return m, cmd
	case "e":
		if t, ok := m.selected(); ok {
			m.editID = t.ID
			cmd := m.openInput(modeEdit, t.Title, "Edit task title...")
			return m, cmd
		}
		return m, nil
	case "/":
		cmd := m.openInput(modeSearch, m.tasks.Filter().SearchTerm, "Search title or description...")
		return m, cmd
	case "s":
		next := cycle(statusCycle, m.tasks.Filter().Status)
		m.tasks.SetFilter(model.FilterPatch{Status: &next})
		m.refresh()
		return m, nil
	case "p":
		next := cycle(priorityCycle, m.tasks.Filter().Priority)
		m.tasks.SetFilter(model.FilterPatch{Priority: &next})
		m.refresh()
		return m, nil
	case "c":
		m.tasks.ResetFilter()
		m.refresh()
		return m, nil
	case "t":
		err := m.theme.Toggle()
		m.pal = m.palette()
		m.list.SetDelegate(itemDelegate{pal: m.pal})
		m.list.Styles.Title = m.pal.Title
		m.list.Styles.HelpStyle = m.pal.Help
		m.list.Styles.PaginationStyle = m.pal.Help
		m.report(err, "theme "+m.theme.Theme())
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.closeInput()
			return m, nil
		case "enter":
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.ti.Value())
	switch m.mode {
	case modeAdd:
		if value == "" {
			m.status, m.failed = "Title cannot be empty", true
			return m, nil
		}
		t, err := m.tasks.Create(model.TaskInput{Title: value, Priority: model.PriorityMedium})
		m.report(err, "added "+ui.ShortID(t.ID))
	case modeEdit:
		if value == "" {
			m.status, m.failed = "Title cannot be empty", true
			return m, nil
		}
		updated, err := m.tasks.Update(m.editID, model.TaskPatch{Title: &value})
		if err == nil && updated == nil {
			m.status, m.failed = "task no longer exists", true
		} else {
			m.report(err, "updated "+ui.ShortID(m.editID))
		}
	case modeSearch:
		m.tasks.SetFilter(model.FilterPatch{SearchTerm: &value})
		m.status = ""
	}
	m.closeInput()
	m.refresh()
	return m, nil
}

func (m Model) View() string {
	content := m.list.View()
	if m.mode != modeBrowse {
		label := map[mode]string{modeAdd: "Add task", modeEdit: "Edit task", modeSearch: "Search"}[m.mode]
		content += "\n" + ui.Frame(m.pal, label+"\n"+m.ti.View())
	}
	if m.status != "" {
		style := m.pal.Muted
		if m.failed {
			style = m.pal.Error
		}
		content += "\n" + style.Render(m.status)
	}
	return ui.Frame(m.pal, content)
}

// cycle returns the value after cur, wrapping around.
func cycle[T comparable](values []T, cur T) T {
	for i, v := range values {
		if v == cur {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
