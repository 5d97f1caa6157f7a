// Package autoplay provides UI collaborators that answer prompts without a
// human: a scripted one for tests and replays, and a Gemini-backed player.
package autoplay

import "sync"

// Scripted answers prompts from fixed queues and records everything shown.
// When a queue runs dry it answers "" to choices and no to questions.
type Scripted struct {
	mu       sync.Mutex
	choices  []string
	answers  []bool
	Messages []string
	Prompts  []string
}

// NewScripted returns a UI that replays choices in order.
func NewScripted(choices ...string) *Scripted {
	return &Scripted{choices: choices}
}

// WithAnswers queues yes/no answers and returns u.
func (u *Scripted) WithAnswers(answers ...bool) *Scripted {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.answers = append(u.answers, answers...)
	return u
}

// Choose queues more choice answers.
func (u *Scripted) Choose(choices ...string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.choices = append(u.choices, choices...)
}

func (u *Scripted) ShowMessage(text string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Messages = append(u.Messages, text)
}

func (u *Scripted) AskYesNo(prompt string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Prompts = append(u.Prompts, prompt)
	if len(u.answers) == 0 {
		return false
	}
	a := u.answers[0]
	u.answers = u.answers[1:]
	return a
}

func (u *Scripted) ShowChoice(prompt string, options []string) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Prompts = append(u.Prompts, prompt)
	if len(u.choices) == 0 {
		return ""
	}
	c := u.choices[0]
	u.choices = u.choices[1:]
	return c
}

// Pending returns how many scripted choices have not been consumed.
func (u *Scripted) Pending() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.choices)
}
