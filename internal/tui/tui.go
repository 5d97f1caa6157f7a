package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/eldritch-pursuit/internal/engine"
)

type sessionState int

const (
	stateLoading sessionState = iota
	statePlaying
	stateOver
	stateError
)

type model struct {
	state     sessionState
	ctx       context.Context
	engine    *engine.Engine
	players   int
	textInput textinput.Model
	viewport  viewport.Model
	err       error
	gameLog   string
	status    string
	width     int
	height    int
	pending   *promptMsg
	outcome   engine.Outcome
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ACD32")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	winStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D75F")).Bold(true)
	loseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D70000")).Bold(true)
)

func newModel(ctx context.Context, eng *engine.Engine, players int) model {
	ti := textinput.New()
	ti.Placeholder = "Type an option or its number..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	return model{
		state:     stateLoading,
		ctx:       ctx,
		engine:    eng,
		players:   players,
		textInput: ti,
		viewport:  viewport.New(80, 20),
	}
}

type gameOverMsg struct {
	outcome engine.Outcome
	err     error
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.play())
}

// play runs the whole game on its own goroutine. The engine reaches the
// player through the Bridge.
func (m model) play() tea.Cmd {
	return func() tea.Msg {
		if err := m.engine.Setup(m.players, nil); err != nil {
			return gameOverMsg{err: err}
		}
		out, err := m.engine.Run(m.ctx)
		return gameOverMsg{outcome: out, err: err}
	}
}

func (m model) logWidth() int {
	return int(float64(m.width) * 0.75)
}

func (m *model) appendLog(text string) {
	m.gameLog += text + "\n\n"
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			answer := strings.TrimSpace(m.textInput.Value())
			if answer == "/quit" {
				return m, tea.Quit
			}
			if m.pending == nil || answer == "" {
				return m, nil
			}
			m.textInput.Reset()
			m.appendLog(userStyle.Width(m.logWidth()).Render("> " + answer))
			m.pending.reply <- answer
			m.pending = nil
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.logWidth()
		m.viewport.Height = msg.Height - 6
		m.viewport.SetContent(m.gameLog)

	case logMsg:
		if m.state == stateLoading {
			m.state = statePlaying
		}
		m.appendLog(gameStyle.Width(m.logWidth()).Render(msg.text))
		return m, nil

	case promptMsg:
		m.state = statePlaying
		m.pending = &msg
		m.status = msg.status
		var b strings.Builder
		b.WriteString(promptStyle.Render(msg.prompt))
		for i, o := range msg.options {
			fmt.Fprintf(&b, "\n  %d. %s", i+1, o)
		}
		m.appendLog(b.String())
		return m, nil

	case gameOverMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.outcome = msg.outcome
		m.state = stateOver
		return m, nil
	}

	if m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateLoading:
		s = "\n  Shuffling the decks... please wait.\n"

	case statePlaying:
		stateView := stateStyle.Width(int(float64(m.width) * 0.23)).Height(m.viewport.Height).Render(m.status)
		mainView := lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), stateView)
		help := helpStyle.Render("Answer with an option or its number. /quit or Esc to leave.")
		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			"\n"+m.textInput.View(),
			"\n"+help,
		)

	case stateOver:
		style := loseStyle
		if m.outcome.InvestigatorsWin {
			style = winStyle
		}
		s = lipgloss.JoinVertical(lipgloss.Left,
			m.viewport.View(),
			"\n"+style.Render(m.outcome.Reason),
			"\n"+helpStyle.Render("Press Esc to quit."),
		)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

// Run plays one game in the terminal. eng must have been built with ui.
func Run(ctx context.Context, eng *engine.Engine, ui *Bridge, players int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer ui.Close()
	if ui.Status == nil {
		ui.Status = StatusOf(eng)
	}

	p := tea.NewProgram(newModel(ctx, eng, players), tea.WithAltScreen())
	ui.attach(p)
	_, err := p.Run()
	return err
}
