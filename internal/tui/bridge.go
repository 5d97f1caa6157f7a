package tui

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tatianab/eldritch-pursuit/internal/models"
)

type logMsg struct {
	text string
}

type promptMsg struct {
	prompt  string
	options []string
	status  string
	reply   chan<- string
}

// Bridge is the UI the engine talks to. Calls come from the engine's
// goroutine and block until the player answers in the terminal.
type Bridge struct {
	// Status renders the sidebar. It runs on the engine's goroutine
	// whenever a prompt is sent, so it may read game state safely.
	Status func() string

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
	once    sync.Once
}

// NewBridge returns a bridge not yet attached to a program.
func NewBridge() *Bridge {
	return &Bridge{done: make(chan struct{})}
}

func (b *Bridge) attach(p *tea.Program) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.program = p
}

// Close releases any engine call waiting for an answer.
func (b *Bridge) Close() {
	b.once.Do(func() { close(b.done) })
}

func (b *Bridge) send(msg tea.Msg) bool {
	b.mu.Lock()
	p := b.program
	b.mu.Unlock()
	if p == nil {
		return false
	}
	select {
	case <-b.done:
		return false
	default:
	}
	p.Send(msg)
	return true
}

func (b *Bridge) ShowMessage(text string) {
	b.send(logMsg{text: text})
}

func (b *Bridge) AskYesNo(prompt string) bool {
	answer := strings.ToLower(strings.TrimSpace(b.ask(prompt, []string{"yes", "no"})))
	return answer == "1" || strings.HasPrefix(answer, "y")
}

func (b *Bridge) ShowChoice(prompt string, options []string) string {
	return b.ask(prompt, options)
}

func (b *Bridge) ask(prompt string, options []string) string {
	status := ""
	if b.Status != nil {
		status = b.Status()
	}
	reply := make(chan string, 1)
	if !b.send(promptMsg{prompt: prompt, options: options, status: status, reply: reply}) {
		return ""
	}
	select {
	case answer := <-reply:
		return answer
	case <-b.done:
		return ""
	}
}

var _ models.UI = (*Bridge)(nil)
