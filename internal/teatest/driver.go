// Package teatest drives bubbletea models synchronously in tests.
//
// Driver stands in for tea.Program: it calls Update directly and runs the
// returned commands inline until the model goes quiet. Commands that block
// (timers, cursor blinks, store watchers) are abandoned after a short wait.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds command chains so a model that always returns a command
// cannot hang a test.
const maxDepth = 100

// cmdTimeout separates in-process commands (store reads, message factories)
// from commands that wait on a timer or a channel.
const cmdTimeout = 50 * time.Millisecond

// Driver feeds messages to a model and drains its commands.
type Driver struct {
	t     testing.TB
	model tea.Model

	// Quit is set once the model asks the program to exit.
	Quit bool
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before Init runs.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.model, _ = d.model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model and runs its Init command.
func New(t testing.TB, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{t: t, model: model}
	for _, opt := range opts {
		opt(d)
	}
	d.run(model.Init(), 0)
	return d
}

// Model returns the current model, as replaced by the last Update.
func (d *Driver) Model() tea.Model { return d.model }

// View renders the current model.
func (d *Driver) View() string { return d.model.View() }

// Send dispatches msg and drains everything it triggers.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.Quit {
		return
	}
	var cmd tea.Cmd
	d.model, cmd = d.model.Update(msg)
	d.run(cmd, 0)
}

// Press sends keys by name: "enter", "esc", "tab", "space", "up", "down",
// "ctrl+c", or any single rune such as "j" or "W".
func (d *Driver) Press(keys ...string) {
	d.t.Helper()
	for _, k := range keys {
		d.Send(KeyMsg(k))
	}
}

// Type sends each rune of s as its own key press.
func (d *Driver) Type(s string) {
	d.t.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// KeyMsg builds the key message for a key name accepted by Press.
func KeyMsg(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// RequireView fails the test unless the rendered view contains every want.
func (d *Driver) RequireView(want ...string) {
	d.t.Helper()
	view := d.View()
	for _, w := range want {
		if !strings.Contains(view, w) {
			d.t.Fatalf("view does not contain %q:\n%s", w, view)
		}
	}
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.t.Logf("teatest: command chain deeper than %d, stopping", maxDepth)
		return
	}

	msg, ok := runWithTimeout(cmd)
	if !ok || msg == nil || isBlink(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.run(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quit = true
		return
	}

	var next tea.Cmd
	d.model, next = d.model.Update(msg)
	d.run(next, depth+1)
}

func runWithTimeout(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}

// isBlink matches the unexported blink messages from bubbles/cursor, which
// chain into timer commands.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
