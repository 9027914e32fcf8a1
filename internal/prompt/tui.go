package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned when a prompt is needed but stdin is not a
// terminal.
var ErrNotInteractive = errors.New("prompt requires an interactive terminal")

const accessMessage = "If you are publishing this package to the registry for the first time, " +
	"select the access level, otherwise select skip:"

var (
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6BCB77"))
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4D96FF"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// Compile-time check that TUI implements Provider.
var _ Provider = (*TUI)(nil)

// TUI is a Provider rendering bubbletea prompts on a terminal.
type TUI struct {
	In  io.Reader
	Out io.Writer
}

// NewTUI returns a TUI bound to the process's standard streams.
func NewTUI() *TUI {
	return &TUI{In: os.Stdin, Out: os.Stderr}
}

func (p *TUI) SelectVersion(ctx context.Context, choices []release.VersionChoice) (release.VersionChoice, error) {
	items := make([]option, len(choices))
	for i, c := range choices {
		items[i] = option{title: fmt.Sprintf("%-12s %s", c.Label(), c.Version)}
	}

	idx, err := p.choose(ctx, "Select the semantic version to publish:", items)
	if err != nil {
		return release.VersionChoice{}, err
	}
	return choices[idx], nil
}

var accessOptions = []release.Access{release.AccessPublic, release.AccessPrivate, release.AccessUnset}

func (p *TUI) SelectAccess(ctx context.Context) (release.Access, error) {
	items := []option{{title: "Public"}, {title: "Private"}, {title: "Skip"}}
	idx, err := p.choose(ctx, accessMessage, items)
	if err != nil {
		return release.AccessUnset, err
	}
	return accessOptions[idx], nil
}

func (p *TUI) Confirm(ctx context.Context, message string) (bool, error) {
	final, err := p.run(ctx, newConfirmModel(message))
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if m.cancelled {
		return false, release.ErrCancelled
	}
	return m.answer, nil
}

func (p *TUI) choose(ctx context.Context, question string, items []option) (int, error) {
	if len(items) == 0 {
		return 0, errors.New("nothing to choose from")
	}
	final, err := p.run(ctx, newSelectModel(question, items))
	if err != nil {
		return 0, err
	}
	m := final.(selectModel)
	if m.cancelled {
		return 0, release.ErrCancelled
	}
	return m.chosen, nil
}

func (p *TUI) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	if f, ok := p.In.(*os.File); ok && !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return nil, ErrNotInteractive
	}

	prog := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.In),
		tea.WithOutput(p.Out),
	)
	final, err := prog.Run()
	if errors.Is(err, tea.ErrProgramKilled) || ctx.Err() != nil {
		return nil, release.ErrCancelled
	}
	if err != nil {
		return nil, fmt.Errorf("running prompt: %w", err)
	}
	return final, nil
}

// option is a list entry.
type option struct {
	title string
}

func (o option) Title() string       { return o.title }
func (o option) Description() string { return "" }
func (o option) FilterValue() string { return o.title }

// selectModel is a single-choice list prompt.
type selectModel struct {
	question  string
	list      list.Model
	chosen    int
	done      bool
	cancelled bool
}

func newSelectModel(question string, options []option) selectModel {
	items := make([]list.Item, len(options))
	for i, o := range options {
		items[i] = o
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(items, delegate, 60, len(items)+2)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return selectModel{question: question, list: l}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.chosen = m.list.Index()
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	q := questionStyle.Render("? ") + m.question
	switch {
	case m.cancelled:
		return q + " " + hintStyle.Render("cancelled") + "\n"
	case m.done:
		item, _ := m.list.SelectedItem().(option)
		return q + " " + answerStyle.Render(item.title) + "\n"
	}
	return q + "\n" + m.list.View() + "\n" + hintStyle.Render("↑/↓ move • enter select • esc cancel") + "\n"
}

// confirmModel is a yes/no prompt defaulting to yes.
type confirmModel struct {
	message   string
	answer    bool
	done      bool
	cancelled bool
}

func newConfirmModel(message string) confirmModel {
	return confirmModel{message: message, answer: true}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "y", "Y":
		m.answer, m.done = true, true
		return m, tea.Quit
	case "n", "N":
		m.answer, m.done = false, true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "left", "right", "tab", "h", "l":
		m.answer = !m.answer
	}
	return m, nil
}

func (m confirmModel) View() string {
	q := questionStyle.Render("? ") + m.message
	switch {
	case m.cancelled:
		return q + " " + hintStyle.Render("cancelled") + "\n"
	case m.done:
		answer := "no"
		if m.answer {
			answer = "yes"
		}
		return q + " " + answerStyle.Render(answer) + "\n"
	}
	yes, no := "yes", "no"
	if m.answer {
		yes = answerStyle.Underline(true).Render(yes)
	} else {
		no = answerStyle.Underline(true).Render(no)
	}
	return fmt.Sprintf("%s %s / %s\n", q, yes, no)
}
