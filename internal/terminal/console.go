package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const ruleWidth = 60

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	keyStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

// Console writes styled session output.
type Console struct {
	w     io.Writer
	color bool
	width int
	md    *glamour.TermRenderer
}

// NewConsole returns a Console writing to w. Styling and animation are
// enabled only when w is a terminal.
func NewConsole(w io.Writer) *Console {
	c := &Console{w: w, width: 100}
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		c.color = true
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			c.width = width
		}
	}
	return c
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *Console) style(s lipgloss.Style, text string) string {
	if !c.color {
		return text
	}
	return s.Render(text)
}

func (c *Console) println(text string) {
	fmt.Fprintln(c.w, text)
}

// Header prints a boxed section title.
func (c *Console) Header(title string) {
	rule := c.style(ruleStyle, strings.Repeat("═", ruleWidth))
	c.println("")
	c.println(rule)
	c.println(c.style(headerStyle, " "+title))
	c.println(rule)
	c.println("")
}

// Rule prints a thin separator.
func (c *Console) Rule() {
	c.println(c.style(dimStyle, strings.Repeat("─", ruleWidth)))
}

// Info prints a plain message.
func (c *Console) Info(msg string) {
	c.println(msg)
}

// Success prints a confirmation message.
func (c *Console) Success(msg string) {
	c.println(c.style(successStyle, "✓ ") + msg)
}

// Warn prints a non-fatal problem.
func (c *Console) Warn(msg string) {
	c.println(c.style(warnStyle, "! ") + msg)
}

// Error prints a failure message.
func (c *Console) Error(msg string) {
	c.println(c.style(errorStyle, "✗ ") + msg)
}

// Dim prints secondary text.
func (c *Console) Dim(msg string) {
	c.println(c.style(dimStyle, msg))
}

// Markdown renders text as markdown, falling back to the raw text when
// rendering fails.
func (c *Console) Markdown(text string) {
	r, err := c.renderer()
	if err == nil {
		if out, err := r.Render(text); err == nil {
			fmt.Fprint(c.w, out)
			return
		}
	}
	c.println(text)
}

func (c *Console) renderer() (*glamour.TermRenderer, error) {
	if c.md != nil {
		return c.md, nil
	}
	style := "notty"
	if c.color {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(max(c.width-4, 40)),
	)
	if err != nil {
		return nil, err
	}
	c.md = r
	return r, nil
}

// Busy shows a spinner with label until the returned func is called. On a
// non-terminal writer the label is printed once.
func (c *Console) Busy(label string) func() {
	if !c.color {
		c.println(label)
		return func() {}
	}
	s := NewSpinner(c.w, label)
	s.Start()
	return s.Stop
}

// Key formats a navigation key hint.
func (c *Console) Key(key, text string) string {
	return fmt.Sprintf("  %s  %s", c.style(keyStyle, key), text)
}
