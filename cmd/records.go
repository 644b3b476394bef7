package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/meslamib3/storiesdb/internal/datastore"
	"github.com/meslamib3/storiesdb/internal/fileutil"
	"github.com/meslamib3/storiesdb/internal/method"
	"github.com/meslamib3/storiesdb/internal/tui"
)

const maxCellWidth = 40

// ListCmd prints a summary table of all methods
type ListCmd struct{}

// ShowCmd prints one method as YAML
type ShowCmd struct {
	ID int64 `help:"Method id; opens a picker when omitted"`
}

// DeleteCmd removes one method
type DeleteCmd struct {
	ID  int64 `help:"Method id; opens a picker when omitted"`
	Yes bool  `short:"y" help:"Delete without asking for confirmation"`
}

func (l *ListCmd) Run(ctx context.Context, out io.Writer) error {
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	methods, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(methods) == 0 {
		_, err = fmt.Fprintln(out, "No methods recorded yet.")
		return err
	}

	_, err = fmt.Fprint(out, renderTable(methods))
	return err
}

func (s *ShowCmd) Run(ctx context.Context, out io.Writer) error {
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id := s.ID
	if id == 0 {
		if id, err = pickMethod(ctx, store, "Select Method ID to Show"); err != nil || id == 0 {
			return err
		}
	}

	m, err := store.Get(ctx, id)
	if err != nil {
		return err
	}

	data, err := fileutil.Encode(m, fileutil.FormatYAML)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func (d *DeleteCmd) Run(ctx context.Context, out io.Writer) error {
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id := d.ID
	if id == 0 {
		if id, err = pickMethod(ctx, store, "Select Method ID to Delete"); err != nil || id == 0 {
			return err
		}
	}

	if !d.Yes {
		m, err := store.Get(ctx, id)
		if err != nil {
			return err
		}
		question := fmt.Sprintf("Delete method %d (%s)?", id, m.MethodName)
		if !confirm(out, stdin, question) {
			_, err = fmt.Fprintln(out, "Nothing was deleted.")
			return err
		}
	}

	deleted, err := store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		_, err = fmt.Fprintf(out, "Method %d no longer exists; nothing was deleted.\n", id)
		return err
	}

	slog.Info("Method deleted", "id", id)
	_, err = fmt.Fprintln(out, "Method deleted successfully!")
	return err
}

// pickMethod opens the terminal picker. It returns 0 when the user cancels.
func pickMethod(ctx context.Context, store datastore.Store, prompt string) (int64, error) {
	methods, err := store.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(methods) == 0 {
		slog.Info("No methods recorded yet")
		return 0, nil
	}

	result, err := selectMethod(prompt, methods)
	if err != nil {
		return 0, err
	}
	if result.Action != tui.ActionSelected {
		slog.Info("No method selected")
		return 0, nil
	}
	return result.ID, nil
}

func confirm(out io.Writer, in io.Reader, question string) bool {
	_, _ = fmt.Fprintf(out, "%s [y/N] ", question)

	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	tableRuleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// renderTable lays out the identifying columns of methods with aligned widths.
func renderTable(methods []method.Method) string {
	headers := []string{"ID", "Method Name", "Method Type", "Partner", "Unique ID"}
	rows := make([][]string, len(methods))
	for i, m := range methods {
		rows[i] = []string{
			strconv.FormatInt(m.ID, 10),
			clip(m.MethodName),
			clip(m.MethodType),
			clip(m.Partner),
			clip(m.UniqueID),
		}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			pad := widths[i] - lipgloss.Width(cell)
			parts[i] = style.Render(cell) + strings.Repeat(" ", pad)
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ") + "\n"
	}

	total := (len(widths) - 1) * 2
	for _, w := range widths {
		total += w
	}

	var b strings.Builder
	b.WriteString(line(headers, tableHeaderStyle))
	b.WriteString(tableRuleStyle.Render(strings.Repeat("-", total)) + "\n")
	for _, row := range rows {
		b.WriteString(line(row, lipgloss.NewStyle()))
	}
	return b.String()
}

// clip shortens s to maxCellWidth runes and keeps it on one line.
func clip(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= maxCellWidth {
		return s
	}
	return string(r[:maxCellWidth-3]) + "..."
}
