package tui

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattjoyce/fecoding/internal/editor"
	"github.com/mattjoyce/fecoding/internal/log"
)

// Console is an editor.Notifier writing to a terminal.
//
// Without an input stream ConfirmDialog cannot ask and answers with the
// default set by AssumeYes.
type Console struct {
	mu        sync.Mutex
	out       io.Writer
	in        io.Reader
	assumeYes bool
	theme     Theme
	logger    *slog.Logger
}

var _ editor.Notifier = (*Console)(nil)

// Option configures a Console.
type Option func(*Console)

// WithInput lets ConfirmDialog prompt interactively on in.
func WithInput(in io.Reader) Option {
	return func(c *Console) { c.in = in }
}

// AssumeYes answers every confirmation with yes without prompting.
func AssumeYes(yes bool) Option {
	return func(c *Console) { c.assumeYes = yes }
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer, opts ...Option) *Console {
	c := &Console{
		out:    out,
		theme:  NewDefaultTheme(),
		logger: log.WithComponent("tui"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Console) ShowModal(msg string) {
	c.println(c.theme.Modal.Render(msg))
}

func (c *Console) ShowStatus(msg string) {
	c.println(c.theme.Status.Render("fecoding: " + msg))
}

func (c *Console) ErrorDialog(msg string) {
	c.println(c.theme.Error.Render(msg))
}

// ConfirmDialog asks question and reports the answer.
func (c *Console) ConfirmDialog(question string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.assumeYes || c.in == nil {
		fmt.Fprintln(c.out, c.theme.Prompt.Render(question))
		c.logger.Info("confirmation answered without prompting", "answer", c.assumeYes)
		return c.assumeYes
	}

	p := tea.NewProgram(newConfirmModel(question, c.theme), tea.WithInput(c.in), tea.WithOutput(c.out))
	final, err := p.Run()
	if err != nil {
		c.logger.Error("confirmation prompt failed", "error", err)
		return false
	}
	m, ok := final.(confirmModel)
	return ok && m.done && m.answer
}

func (c *Console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, s)
}
