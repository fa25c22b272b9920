package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/idilsaglam/taskboard/internal/model"
	"github.com/idilsaglam/taskboard/internal/taskstore"
	"github.com/idilsaglam/taskboard/internal/themestore"
	"github.com/idilsaglam/taskboard/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// App is the state a command runs against.
type App struct {
	Tasks *taskstore.Store
	Theme *themestore.Store

	Out, Err io.Writer

	// NoColor forces the plain palette.
	NoColor bool

	// Interactive starts the full-screen UI. Nil disables the ui subcommand.
	Interactive func() error
}

// Options tune output behavior from root flags.
type Options struct {
	Group bool // list grouped by pending/done
}

func (a *App) palette() ui.Palette {
	if a.NoColor {
		return ui.Plain()
	}
	return ui.PaletteFor(a.Theme.Theme())
}

func (a *App) ok(msg string)   { ui.OK(a.Out, a.palette(), msg) }
func (a *App) fail(msg string) { ui.Fail(a.Err, a.palette(), msg) }

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(app *App, args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp(app.Out)
		return ExitUsage
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(app.Out)
		return ExitOK
	case "add":
		return app.doAdd(a)
	case "ls":
		return app.doList(a, opt)
	case "edit":
		return app.doEdit(a)
	case "done":
		if len(a) != 1 {
			app.fail("usage: taskboard done <id>")
			return ExitUsage
		}
		return app.doToggle(a[0])
	case "rm":
		if len(a) != 1 {
			app.fail("usage: taskboard rm <id>")
			return ExitUsage
		}
		return app.doRemove(a[0])
	case "tags":
		return app.doTags()
	case "theme":
		return app.doTheme(a)
	case "ui":
		if app.Interactive == nil {
			app.fail("ui: interactive mode is not available")
			return ExitError
		}
		if err := app.Interactive(); err != nil {
			app.fail("tui: " + err.Error())
			return ExitError
		}
		return ExitOK
	}

	app.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(app.Err)
	PrintHelp(app.Err)
	return ExitUsage
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `taskboard - tasks in your terminal

Usage:
  taskboard [--group] <subcommand> [flags] [args]

Subcommands:
  add [flags] <title...>    Add a task
        -d <text>           description
        -p <priority>       low, medium (default) or high
        -t <tag>            tag, repeatable or comma separated
        --due <YYYY-MM-DD>  due date
  ls [flags]                List tasks, most recently touched first
        --search <text>     match title or description
        --status <s>        all, active or completed
        --priority <p>      low, medium or high
        -t <tag>            any of the tags
  edit [flags] <id>         Change a task (flags as for add, plus --title, --clear-due)
  done <id>                 Toggle completion
  rm <id>                   Remove a task
  tags                      List every tag in use
  theme [light|dark|toggle] Show or change the theme
  ui                        Interactive list

Ids may be shortened to any unique prefix.

Examples:
  taskboard add -p high -t work "Fix login bug"
  taskboard ls --status active -t work
  taskboard done 1a2b
  taskboard theme toggle
`)
}

// -------------- subcommand impls ----------------

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// tagFlag collects repeated and comma separated -t values.
func tagFlag(fs *flag.FlagSet, dst *[]string, set *bool) {
	add := func(v string) error {
		if set != nil {
			*set = true
		}
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				*dst = append(*dst, tag)
			}
		}
		return nil
	}
	fs.Func("t", "tag", add)
	fs.Func("tag", "tag", add)
}

func (a *App) doAdd(args []string) int {
	fs := newFlagSet("add")
	var desc, prio, due string
	var tags []string
	fs.StringVar(&desc, "d", "", "")
	fs.StringVar(&desc, "desc", "", "")
	fs.StringVar(&prio, "p", string(model.PriorityMedium), "")
	fs.StringVar(&prio, "priority", string(model.PriorityMedium), "")
	fs.StringVar(&due, "due", "", "")
	tagFlag(fs, &tags, nil)
	if err := fs.Parse(args); err != nil {
		a.fail("add: " + err.Error())
		return ExitUsage
	}

	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		a.fail("usage: taskboard add [flags] <title...>")
		return ExitUsage
	}
	in := model.TaskInput{Title: title, Description: desc, Tags: tags}

	p, err := model.ParsePriority(prio)
	if err != nil {
		a.fail("add: " + err.Error())
		return ExitUsage
	}
	in.Priority = p

	if due != "" {
		d, err := model.ParseDueDate(due)
		if err != nil {
			a.fail("add: " + err.Error())
			return ExitUsage
		}
		in.DueDate = &d
	}

	t, err := a.Tasks.Create(in)
	if err != nil {
		a.fail("save: " + err.Error())
		return ExitError
	}
	a.ok("added " + ui.ShortID(t.ID))
	return ExitOK
}

func (a *App) doList(args []string, opt Options) int {
	fs := newFlagSet("ls")
	var search, status, prio string
	var tags []string
	var tagsSet bool
	group := opt.Group
	fs.StringVar(&search, "search", "", "")
	fs.StringVar(&search, "s", "", "")
	fs.StringVar(&status, "status", "", "")
	fs.StringVar(&prio, "priority", "", "")
	fs.StringVar(&prio, "p", "", "")
	fs.BoolVar(&group, "group", group, "")
	tagFlag(fs, &tags, &tagsSet)
	if err := fs.Parse(args); err != nil {
		a.fail("ls: " + err.Error())
		return ExitUsage
	}
	if fs.NArg() > 0 {
		a.fail("usage: taskboard ls [flags]")
		return ExitUsage
	}

	var patch model.FilterPatch
	if search != "" {
		patch.SearchTerm = &search
	}
	if status != "" {
		st, err := model.ParseStatus(status)
		if err != nil {
			a.fail("ls: " + err.Error())
			return ExitUsage
		}
		patch.Status = &st
	}
	if prio != "" {
		p, err := model.ParsePriority(prio)
		if err != nil {
			a.fail("ls: " + err.Error())
			return ExitUsage
		}
		patch.Priority = &p
	}
	if tagsSet {
		patch.Tags = &tags
	}
	a.Tasks.SetFilter(patch)

	pal := a.palette()
	all := a.Tasks.Tasks()
	shown := a.Tasks.FilteredTasks()
	d, _ := model.Summarize(all)

	var lines []string
	lines = append(lines, ui.Header(pal, all))
	lines = append(lines, pal.Muted.Render(ui.ProgressBar(d, len(all), 28)))
	lines = append(lines, "")

	if group {
		lines = append(lines, groupLines(pal, shown)...)
	} else {
		lines = append(lines, flatLines(pal, shown)...)
	}
	lines = append(lines, "")
	if f := a.Tasks.Filter(); !f.IsDefault() {
		lines = append(lines, pal.Muted.Render(fmt.Sprintf("showing %d of %d", len(shown), len(all))))
	} else {
		lines = append(lines, pal.Muted.Render("Tip: add with `taskboard add \"Buy milk\"`"))
	}
	ui.Panel(a.Out, pal, lines)
	return ExitOK
}

func (a *App) doEdit(args []string) int {
	fs := newFlagSet("edit")
	var title, desc, prio, due string
	var tags []string
	var tagsSet, clearDue bool
	fs.StringVar(&title, "title", "", "")
	fs.StringVar(&desc, "d", "", "")
	fs.StringVar(&desc, "desc", "", "")
	fs.StringVar(&prio, "p", "", "")
	fs.StringVar(&prio, "priority", "", "")
	fs.StringVar(&due, "due", "", "")
	fs.BoolVar(&clearDue, "clear-due", false, "")
	tagFlag(fs, &tags, &tagsSet)
	if err := fs.Parse(args); err != nil {
		a.fail("edit: " + err.Error())
		return ExitUsage
	}
	if fs.NArg() != 1 {
		a.fail("usage: taskboard edit [flags] <id>")
		return ExitUsage
	}

	var patch model.TaskPatch
	visited := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })
	if visited["title"] {
		if strings.TrimSpace(title) == "" {
			a.fail("edit: empty title")
			return ExitUsage
		}
		patch.Title = &title
	}
	if visited["d"] || visited["desc"] {
		patch.Description = &desc
	}
	if prio != "" {
		p, err := model.ParsePriority(prio)
		if err != nil {
			a.fail("edit: " + err.Error())
			return ExitUsage
		}
		patch.Priority = &p
	}
	if tagsSet {
		patch.Tags = &tags
	}
	if due != "" {
		d, err := model.ParseDueDate(due)
		if err != nil {
			a.fail("edit: " + err.Error())
			return ExitUsage
		}
		patch.DueDate = &d
	}
	patch.ClearDueDate = clearDue
	if patch.Empty() {
		a.fail("edit: nothing to change")
		return ExitUsage
	}

	t, code := a.resolve(fs.Arg(0))
	if code != ExitOK {
		return code
	}
	updated, err := a.Tasks.Update(t.ID, patch)
	if err != nil {
		a.fail("save: " + err.Error())
		return ExitError
	}
	if updated == nil {
		a.fail("edit: task disappeared: " + t.ID)
		return ExitError
	}
	a.ok("updated " + ui.ShortID(updated.ID))
	return ExitOK
}

func (a *App) doToggle(ref string) int {
	t, code := a.resolve(ref)
	if code != ExitOK {
		return code
	}
	if err := a.Tasks.Toggle(t.ID); err != nil {
		a.fail("save: " + err.Error())
		return ExitError
	}
	if t.Completed {
		a.ok("reopened " + ui.ShortID(t.ID))
	} else {
		a.ok("completed " + ui.ShortID(t.ID))
	}
	return ExitOK
}

func (a *App) doRemove(ref string) int {
	t, code := a.resolve(ref)
	if code != ExitOK {
		return code
	}
	if err := a.Tasks.Delete(t.ID); err != nil {
		a.fail("save: " + err.Error())
		return ExitError
	}
	a.ok("removed " + ui.ShortID(t.ID))
	return ExitOK
}

func (a *App) doTags() int {
	tags := a.Tasks.AvailableTags()
	if len(tags) == 0 {
		fmt.Fprintln(a.Out, a.palette().Muted.Render("no tags"))
		return ExitOK
	}
	for _, tag := range tags {
		fmt.Fprintln(a.Out, tag)
	}
	return ExitOK
}

func (a *App) doTheme(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(a.Out, a.Theme.Theme())
		return ExitOK
	}
	if len(args) > 1 {
		a.fail("usage: taskboard theme [light|dark|toggle]")
		return ExitUsage
	}

	var err error
	switch args[0] {
	case themestore.Light, themestore.Dark:
		err = a.Theme.SetTheme(args[0])
	case "toggle":
		err = a.Theme.Toggle()
	default:
		a.fail("usage: taskboard theme [light|dark|toggle]")
		return ExitUsage
	}
	if err != nil {
		a.fail("save: " + err.Error())
		return ExitError
	}
	a.ok("theme " + a.Theme.Theme())
	return ExitOK
}

func (a *App) resolve(ref string) (model.Task, int) {
	t, err := a.Tasks.Resolve(ref)
	switch {
	case err == nil:
		return t, ExitOK
	case errors.Is(err, taskstore.ErrNotFound), errors.Is(err, taskstore.ErrAmbiguous):
		a.fail(err.Error())
		fmt.Fprintln(a.Err, a.palette().Muted.Render("Hint: run `taskboard ls` to see task ids"))
		return model.Task{}, ExitUsage
	default:
		a.fail(err.Error())
		return model.Task{}, ExitError
	}
}

// -------------- rendering helpers --------------

func flatLines(p ui.Palette, tasks []model.Task) []string {
	if len(tasks) == 0 {
		return []string{p.Muted.Render("no tasks")}
	}
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ui.TaskLine(p, t))
	}
	return out
}

func groupLines(p ui.Palette, tasks []model.Task) []string {
	var pend, done []model.Task
	for _, t := range tasks {
		if t.Completed {
			done = append(done, t)
		} else {
			pend = append(pend, t)
		}
	}
	var lines []string
	lines = append(lines, p.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, p.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(p, pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, p.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, p.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(p, done)...)
	}
	return lines
}
