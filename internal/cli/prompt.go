package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/piview/piview/pkg/resolver"
)

// Prompt styles
var (
	promptAnsweredStyle = lipgloss.NewStyle().Foreground(colorGreen)
	promptSkippedStyle  = lipgloss.NewStyle().Foreground(colorDim)
	promptPendingStyle  = lipgloss.NewStyle().Foreground(colorGray)
	promptCursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// =============================================================================
// TUIPrompter - Interactive resolution dialog
// =============================================================================

// TUIPrompter collects identifier resolutions from the operator through a
// terminal form, one form per namespace batch. It implements
// [resolver.Prompter]: every candidate in the batch yields exactly one
// answer, and aborting the dialog yields a batch of skipped answers.
type TUIPrompter struct{}

// ResolveBatch runs the dialog for one namespace batch and returns the full
// batch outcome. The dialog suspends the calling flow until the operator
// finishes or cancels; cancellation is reported as all-skipped, not as an
// error, per the resolution contract.
func (TUIPrompter) ResolveBatch(ctx context.Context, req resolver.Request) ([]resolver.Answer, error) {
	if len(req.Candidates) == 0 {
		return nil, nil
	}

	prog := tea.NewProgram(newResolveModel(req), tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("resolution dialog: %w", err)
	}

	m, ok := final.(ResolveModel)
	if !ok {
		return nil, fmt.Errorf("resolution dialog returned unexpected model %T", final)
	}

	if m.Cancelled {
		answers := make([]resolver.Answer, len(req.Candidates))
		for i, id := range req.Candidates {
			answers[i] = resolver.Answer{Value: id}
		}
		return answers, nil
	}
	return m.Answers, nil
}

// =============================================================================
// ResolveModel - bubbletea form for one namespace batch
// =============================================================================

// ResolveModel is the bubbletea model for the resolution form. The operator
// works through the candidate ids in order: free text or Tab-cycled
// suggestions, Enter to accept, Enter on an empty field to skip, Esc to
// cancel the whole batch.
type ResolveModel struct {
	Req       resolver.Request
	Answers   []resolver.Answer
	Cancelled bool

	cursor int    // index into Req.Candidates
	input  string // current field content
	sugIdx int    // index into Req.Suggestions, -1 = free text
}

// newResolveModel creates the form model for a batch request.
func newResolveModel(req resolver.Request) ResolveModel {
	return ResolveModel{Req: req, sugIdx: -1}
}

func (m ResolveModel) Init() tea.Cmd {
	return nil
}

func (m ResolveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.Cancelled = true
		return m, tea.Quit

	case "enter":
		m.Answers = append(m.Answers, resolver.Answer{
			Value:    m.Req.Candidates[m.cursor],
			Name:     m.input,
			Accepted: strings.TrimSpace(m.input) != "",
		})
		m.cursor++
		m.input = ""
		m.sugIdx = -1
		if m.cursor >= len(m.Req.Candidates) {
			return m, tea.Quit
		}

	case "tab", "down":
		m.cycleSuggestion(1)

	case "shift+tab", "up":
		m.cycleSuggestion(-1)

	case "backspace":
		if m.input != "" {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
		m.sugIdx = -1

	default:
		switch key.Type {
		case tea.KeyRunes:
			m.input += string(key.Runes)
			m.sugIdx = -1
		case tea.KeySpace:
			m.input += " "
			m.sugIdx = -1
		}
	}

	return m, nil
}

// cycleSuggestion steps through the suggestion list, wrapping at the ends,
// and copies the selected suggestion into the input field.
func (m *ResolveModel) cycleSuggestion(dir int) {
	n := len(m.Req.Suggestions)
	if n == 0 {
		return
	}
	m.sugIdx = ((m.sugIdx+dir)%n + n) % n
	m.input = m.Req.Suggestions[m.sugIdx]
}

func (m ResolveModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Resolve Unknown %s IDs", titleCase(m.Req.Namespace.String()))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("type a name  ⇥ cycle suggestions  ⏎ accept (empty = skip)  esc cancel"))
	b.WriteString("\n")
	if m.Req.ContextHint != "" {
		b.WriteString(StyleDim.Render("planet: ") + StyleValue.Render(m.Req.ContextHint))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, id := range m.Req.Candidates {
		switch {
		case i < len(m.Answers):
			a := m.Answers[i]
			if a.Accepted {
				b.WriteString(promptAnsweredStyle.Render(fmt.Sprintf("  %s %d → %s", iconSuccess, id, a.Name)))
			} else {
				b.WriteString(promptSkippedStyle.Render(fmt.Sprintf("  - %d skipped", id)))
			}
		case i == m.cursor:
			line := fmt.Sprintf("  %s %d ▸ %s▌", iconInfo, id, m.input)
			b.WriteString(promptCursorStyle.Render(line))
			if m.sugIdx >= 0 {
				b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.sugIdx+1, len(m.Req.Suggestions))))
			}
		default:
			b.WriteString(promptPendingStyle.Render(fmt.Sprintf("    %d", id)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", min(m.cursor+1, len(m.Req.Candidates)), len(m.Req.Candidates))))
	b.WriteString("\n")

	return b.String()
}

// titleCase capitalizes each space-separated word ("pin type" → "Pin Type").
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
