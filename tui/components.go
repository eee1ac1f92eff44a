package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Form is a column of labelled text inputs.
type Form struct {
	Title  string
	Key    string // empty when creating
	fields []Field
	inputs []textinput.Model
	focus  int
}

// NewForm builds a form; values (may be nil) pre-fill the inputs.
func NewForm(title, key string, fields []Field, values []string) Form {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Placeholder = f.Placeholder
		in.CharLimit = 255
		in.Width = 40
		if i < len(values) {
			in.SetValue(values[i])
		}
		inputs[i] = in
	}
	f := Form{Title: title, Key: key, fields: fields, inputs: inputs}
	f.setFocus(0)
	return f
}

func (f *Form) setFocus(i int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

// setValue replaces the content of input i.
func (f *Form) setValue(i int, v string) {
	f.inputs[i].SetValue(v)
}

func (f Form) Values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

// Validate checks required fields, the way the desktop form refused to
// submit with blank entries.
func (f Form) Validate() error {
	for i, v := range f.Values() {
		if f.fields[i].Required && v == "" {
			return fmt.Errorf("%s es obligatorio", f.fields[i].Label)
		}
	}
	return nil
}

func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			return f.setFocus(f.focus + 1)
		case "shift+tab", "up":
			return f.setFocus(f.focus - 1)
		}
	}
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f Form) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.Title))
	b.WriteString("\n")
	for i, in := range f.inputs {
		label := labelStyle
		if i == f.focus {
			label = focusedLabelStyle
		}
		name := f.fields[i].Label
		if f.fields[i].Required {
			name += " *"
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label.Render(name), in.View()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(
		FormatKey("tab/↓", "next") + " • " + FormatKey("enter", "save") + " • " + FormatKey("esc", "cancel"),
	))
	return boxStyle.Render(b.String())
}

// ConfirmationDialog is a yes/no prompt.
type ConfirmationDialog struct {
	Title       string
	Message     string
	YesSelected bool
}

func NewConfirmationDialog(title, message string) ConfirmationDialog {
	return ConfirmationDialog{Title: title, Message: message}
}

// Update returns decided=true once the user has answered; confirmed is the answer.
func (d *ConfirmationDialog) Update(msg tea.Msg) (decided, confirmed bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, false
	}
	switch km.String() {
	case "left", "h":
		d.YesSelected = true
	case "right", "l":
		d.YesSelected = false
	case "y":
		return true, true
	case "n", "esc", "q":
		return true, false
	case "enter":
		return true, d.YesSelected
	}
	return false, false
}

func (d ConfirmationDialog) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n")
	b.WriteString(d.Message)
	b.WriteString("\n\n")

	yes := inactiveButtonStyle.Render("Sí")
	no := inactiveButtonStyle.Render("No")
	if d.YesSelected {
		yes = activeButtonStyle.Render("Sí")
	} else {
		no = activeButtonStyle.Render("No")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, yes, "  ", no))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(FormatKey("←/→", "navigate") + " • " + FormatKey("enter", "confirm") + " • " + FormatKey("esc", "cancel")))

	return boxStyle.Render(b.String())
}
