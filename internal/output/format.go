package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/taskdeck/taskdeck/internal/api"
)

// Format selects how listings are rendered.
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
)

// ParseFormat validates a --output flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatNDJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or ndjson)", s)
	}
}

// Printer writes resources to w in the configured format.
type Printer struct {
	Format Format
	W      io.Writer
}

func (p *Printer) Tasks(tasks []api.Task) error {
	return render(p, tasks, []string{"ID", "CONTENT", "PROJECT", "PRIORITY", "DUE", "LABELS"},
		func(t api.Task) []any {
			return []any{t.ID, t.Content, t.ProjectID, t.Priority, t.DueDate, strings.Join(t.Labels, ",")}
		})
}

func (p *Printer) Projects(projects []api.Project) error {
	return render(p, projects, []string{"ID", "NAME", "COLOR", "FAVORITE"},
		func(pr api.Project) []any {
			return []any{pr.ID, pr.Name, pr.Color, pr.IsFavorite}
		})
}

func (p *Printer) Labels(labels []api.Label) error {
	return render(p, labels, []string{"ID", "NAME", "COLOR"},
		func(l api.Label) []any {
			return []any{l.ID, l.Name, l.Color}
		})
}

func (p *Printer) Sections(sections []api.Section) error {
	return render(p, sections, []string{"ID", "PROJECT", "NAME"},
		func(s api.Section) []any {
			return []any{s.ID, s.ProjectID, s.Name}
		})
}

func (p *Printer) Goals(goals []api.Goal) error {
	return render(p, goals, []string{"ID", "NAME", "TARGET", "PROGRESS"},
		func(g api.Goal) []any {
			return []any{g.ID, g.Name, g.TargetDate, fmt.Sprintf("%d%%", g.Progress)}
		})
}

func (p *Printer) Reminders(reminders []api.Reminder) error {
	return render(p, reminders, []string{"ID", "TASK", "DUE"},
		func(r api.Reminder) []any {
			due := r.Due
			if due == "" && r.MinuteOffset != 0 {
				due = fmt.Sprintf("%d min before", r.MinuteOffset)
			}
			return []any{r.ID, r.TaskID, due}
		})
}

func (p *Printer) Filters(filters []api.Filter) error {
	return render(p, filters, []string{"ID", "NAME", "QUERY"},
		func(f api.Filter) []any {
			return []any{f.ID, f.Name, f.Query}
		})
}

func (p *Printer) Notifications(notifications []api.Notification) error {
	return render(p, notifications, []string{"ID", "TYPE", "MESSAGE", "READ"},
		func(n api.Notification) []any {
			return []any{n.ID, n.Type, n.Message, n.IsRead}
		})
}

// Value prints a single resource. Tables do not apply; text falls back to
// indented JSON.
func (p *Printer) Value(v any) error {
	switch p.Format {
	case FormatNDJSON:
		return json.NewEncoder(p.W).Encode(v)
	default:
		return writeJSON(p.W, v)
	}
}

func render[T any](p *Printer, items []T, header []string, row func(T) []any) error {
	switch p.Format {
	case FormatJSON:
		return writeJSON(p.W, items)
	case FormatNDJSON:
		enc := json.NewEncoder(p.W)
		for _, item := range items {
			if err := enc.Encode(item); err != nil {
				return err
			}
		}
		return nil
	default:
		if len(items) == 0 {
			_, err := fmt.Fprintln(p.W, "No results.")
			return err
		}
		t := table.NewWriter()
		t.SetOutputMirror(p.W)
		t.SetStyle(table.StyleRounded)

		h := make(table.Row, len(header))
		for i, col := range header {
			h[i] = col
		}
		t.AppendHeader(h)
		for _, item := range items {
			t.AppendRow(row(item))
		}
		t.Render()
		return nil
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
