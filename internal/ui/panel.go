package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/taskboard/internal/model"
)

// ShortIDLen is how many id characters the listings show.
const ShortIDLen = 8

// ShortID trims an id for display. Any unique prefix resolves back.
func ShortID(id string) string {
	if len(id) > ShortIDLen {
		return id[:ShortIDLen]
	}
	return id
}

// OK prints a success line.
func OK(w io.Writer, p Palette, msg string) {
	fmt.Fprintln(w, p.Success.Render(p.SymDone+" "+msg))
}

// Fail prints an error line.
func Fail(w io.Writer, p Palette, msg string) {
	fmt.Fprintln(w, p.Error.Render("✖ "+msg))
}

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Frame wraps inner in the palette's border.
func Frame(p Palette, inner string) string {
	return lipgloss.NewStyle().
		Border(p.Border).
		BorderForeground(p.BorderColor).
		Padding(0, 1).
		Render(inner)
}

// Panel draws a framed box around lines.
func Panel(w io.Writer, p Palette, lines []string) {
	fmt.Fprintln(w, Frame(p, strings.Join(lines, "\n")))
}

// Header is the "Tasks ✔ n • n Total n" line.
func Header(p Palette, tasks []model.Task) string {
	d, pn := model.Summarize(tasks)
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		p.Title.Render("Tasks"),
		p.Success.Render(p.SymDone), d,
		p.Pending.Render(p.SymPending), pn,
		p.Accent.Render("Total"), len(tasks),
	)
}

// TaskLine renders one task on a single line:
// box, short id, priority badge, title, tags, due date.
func TaskLine(p Palette, t model.Task) string {
	box := p.Muted.Render(p.BoxUnchecked)
	title := normalizeTitle(t.Title)
	if t.Completed {
		box = p.Success.Render(p.BoxChecked)
		title = p.Done.Render(title)
	}

	parts := []string{box, p.Muted.Render(ShortID(t.ID))}
	if t.Priority != "" {
		parts = append(parts, p.PriorityStyle(t.Priority).Render("["+string(t.Priority)+"]"))
	}
	parts = append(parts, title)
	if len(t.Tags) > 0 {
		tags := make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			tags[i] = "#" + tag
		}
		parts = append(parts, p.Accent.Render(strings.Join(tags, " ")))
	}
	if t.DueDate != nil {
		parts = append(parts, p.Pending.Render("due "+*t.DueDate))
	}
	return strings.Join(parts, " ")
}

// maxTitleWidth is the widest title a listing shows, in terminal cells.
const maxTitleWidth = 80

// normalizeTitle keeps a listing on one line and never blank.
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	if ansi.StringWidth(title) > maxTitleWidth {
		title = ansi.Truncate(title, maxTitleWidth, "...")
	}
	return title
}
