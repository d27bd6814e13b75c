package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// templateInfo describes one stored template file.
type templateInfo struct {
	Name     string // base name without extension
	Path     string
	Size     int64
	Modified time.Time
}

// newTemplatesCmd creates the templates command: browse the template
// directory and open one through the view pipeline.
func newTemplatesCmd() *cobra.Command {
	var listOnly bool

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Browse stored colony templates",
		Long: `List the colony templates in the template directory and pick one to view.

The directory defaults to $XDG_DATA_HOME/piview/templates and can be
overridden with $PIVIEW_TEMPLATES. Only *.json files are listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplates(cmd.Context(), listOnly)
		},
	}

	cmd.Flags().BoolVarP(&listOnly, "list", "l", false, "print the template list and exit")

	return cmd
}

func runTemplates(ctx context.Context, listOnly bool) error {
	dir, err := templatesDir()
	if err != nil {
		return fmt.Errorf("locate templates: %w", err)
	}

	templates, err := listTemplates(dir)
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		printInfo("no templates found")
		printDetail("put *.json template files in %s", dir)
		return nil
	}

	if listOnly {
		for _, t := range templates {
			printKeyValue(t.Name, fmt.Sprintf("%s  %s", formatSize(t.Size), formatRelativeTime(t.Modified)))
		}
		printDetail("%d template(s) in %s", len(templates), dir)
		return nil
	}

	selected, err := pickTemplate(ctx, templates)
	if err != nil {
		return err
	}
	if selected == nil {
		return nil
	}

	printInfo("opening %s", StyleHighlight.Render(selected.Name))
	return runView(ctx, selected.Path, viewOpts{format: formatSVG, scale: defaultScale})
}

// listTemplates returns the *.json files under dir, sorted by name. A missing
// directory is reported as an empty list, not an error.
func listTemplates(dir string) ([]templateInfo, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read templates dir %s: %w", dir, err)
	}

	var templates []templateInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		templates = append(templates, templateInfo{
			Name:     strings.TrimSuffix(e.Name(), ".json"),
			Path:     filepath.Join(dir, e.Name()),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].Name < templates[j].Name })
	return templates, nil
}

// pickTemplate runs the interactive picker and returns the selection, or nil
// when the operator quits without choosing.
func pickTemplate(ctx context.Context, templates []templateInfo) (*templateInfo, error) {
	prog := tea.NewProgram(newTemplateListModel(templates), tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("template picker: %w", err)
	}
	m, ok := final.(TemplateListModel)
	if !ok {
		return nil, fmt.Errorf("template picker returned unexpected model %T", final)
	}
	return m.Selected, nil
}

// =============================================================================
// TemplateListModel - Interactive template selection
// =============================================================================

// TemplateListModel is the bubbletea model for the template picker.
type TemplateListModel struct {
	Templates []templateInfo
	Cursor    int
	Selected  *templateInfo
}

func newTemplateListModel(templates []templateInfo) TemplateListModel {
	return TemplateListModel{Templates: templates}
}

func (m TemplateListModel) Init() tea.Cmd {
	return nil
}

func (m TemplateListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Templates)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Templates[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m TemplateListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Template"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	for i, t := range m.Templates {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-30s  %8s  %s",
			cursor, t.Name, formatSize(t.Size), formatRelativeTime(t.Modified))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Templates))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
