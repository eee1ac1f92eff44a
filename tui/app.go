// Package tui is the interactive terminal front end: one tab per entity,
// with a table, an add/edit form and a delete confirmation.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Mode is what the active tab is currently showing.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeForm
	ModeConfirm
)

const opTimeout = 10 * time.Second

type tab struct {
	res   Resource
	table table.Model
	rows  []Row
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx     context.Context
	tabs    []tab
	active  int
	mode    Mode
	form    Form
	confirm ConfirmationDialog
	pending string // key awaiting delete confirmation
	saving  bool   // a saveCmd is in flight; the form ignores submit and esc
	status  string
	err     error
	width   int
	height  int
}

// Messages
type rowsLoadedMsg struct {
	tab  int
	rows []Row
	err  error
}

type savedMsg struct {
	tab    int
	status string
	err    error
}

type deletedMsg struct {
	tab int
	err error
}

func New(ctx context.Context, resources []Resource) Model {
	tabs := make([]tab, len(resources))
	for i, r := range resources {
		t := table.New(
			table.WithColumns(r.Columns()),
			table.WithFocused(true),
			table.WithHeight(12),
		)
		tabs[i] = tab{res: r, table: t}
	}
	return Model{ctx: ctx, tabs: tabs}
}

// Run starts the program on the alternate screen and blocks until the user quits.
func Run(ctx context.Context, resources []Resource) error {
	_, err := tea.NewProgram(New(ctx, resources), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.tabs))
	for i := range m.tabs {
		cmds[i] = m.loadCmd(i)
	}
	return tea.Batch(cmds...)
}

// Commands
func (m Model) loadCmd(i int) tea.Cmd {
	res := m.tabs[i].res
	ctx := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		rows, err := res.Load(ctx)
		return rowsLoadedMsg{tab: i, rows: rows, err: err}
	}
}

func (m Model) saveCmd(i int, key string, values []string) tea.Cmd {
	res := m.tabs[i].res
	ctx := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		status, err := res.Save(ctx, key, values)
		return savedMsg{tab: i, status: status, err: err}
	}
}

func (m Model) deleteCmd(i int, key string) tea.Cmd {
	res := m.tabs[i].res
	ctx := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		return deletedMsg{tab: i, err: res.Delete(ctx, key)}
	}
}

// selected returns the row under the cursor of the active tab.
func (m Model) selected() (Row, bool) {
	t := m.tabs[m.active]
	c := t.table.Cursor()
	if c < 0 || c >= len(t.rows) {
		return Row{}, false
	}
	return t.rows[c], true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for i := range m.tabs {
			m.tabs[i].table.SetHeight(max(msg.Height-12, 3))
		}
		return m, nil

	case rowsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		t := &m.tabs[msg.tab]
		t.rows = msg.rows
		cells := make([]table.Row, len(msg.rows))
		for i, r := range msg.rows {
			cells[i] = r.Cells
		}
		t.table.SetRows(cells)
		if t.table.Cursor() >= len(cells) {
			t.table.SetCursor(max(len(cells)-1, 0))
		}
		return m, nil

	case savedMsg:
		m.saving = false
		if msg.err != nil {
			// keep the form open so the user can fix the input
			m.err = msg.err
			return m, nil
		}
		m.mode = ModeBrowse
		m.status, m.err = msg.status, nil
		return m, m.loadCmd(msg.tab)

	case deletedMsg:
		m.mode = ModeBrowse
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status, m.err = "Registro eliminado", nil
		return m, m.loadCmd(msg.tab)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case ModeForm:
			return m.updateForm(msg)
		case ModeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	res := m.tabs[m.active].res
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "right":
		m.active = (m.active + 1) % len(m.tabs)
		m.status, m.err = "", nil
		return m, m.loadCmd(m.active)
	case "shift+tab", "left":
		m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
		m.status, m.err = "", nil
		return m, m.loadCmd(m.active)
	case "r":
		return m, m.loadCmd(m.active)
	case "n":
		m.form = NewForm("Agregar "+res.Title(), "", res.Fields(false), nil)
		m.mode, m.status, m.err = ModeForm, "", nil
		return m, nil
	case "e":
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.form = NewForm("Editar "+res.Title(), row.Key, res.Fields(true), row.Values)
		m.mode, m.status, m.err = ModeForm, "", nil
		return m, nil
	case "d":
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.pending = row.Key
		m.confirm = NewConfirmationDialog("Eliminar", "¿Eliminar "+row.Key+" de "+res.Title()+"?")
		m.mode = ModeConfirm
		return m, nil
	}

	var cmd tea.Cmd
	m.tabs[m.active].table, cmd = m.tabs[m.active].table.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.mode, m.err = ModeBrowse, nil
		return m, nil
	case "enter":
		if err := m.form.Validate(); err != nil {
			m.err = err
			return m, nil
		}
		m.saving, m.err = true, nil
		return m, m.saveCmd(m.active, m.form.Key, m.form.Values())
	}
	cmd := m.form.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	decided, yes := m.confirm.Update(msg)
	if !decided {
		return m, nil
	}
	if !yes {
		m.mode = ModeBrowse
		return m, nil
	}
	return m, m.deleteCmd(m.active, m.pending)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sistema de Gestión de Restaurante"))
	b.WriteString("\n")

	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.active {
			tabs[i] = activeTabStyle.Render(t.res.Title())
		} else {
			tabs[i] = inactiveTabStyle.Render(t.res.Title())
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	switch m.mode {
	case ModeForm:
		b.WriteString(m.form.View())
		if m.saving {
			b.WriteString("\n")
			b.WriteString(helpStyle.Render("Guardando…"))
		}
	case ModeConfirm:
		b.WriteString(m.confirm.View())
	default:
		b.WriteString(boxStyle.Render(m.tabs[m.active].table.View()))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(
			FormatKey("n", "nuevo") + " • " + FormatKey("e", "editar") + " • " +
				FormatKey("d", "eliminar") + " • " + FormatKey("r", "recargar") + " • " +
				FormatKey("tab", "pestaña") + " • " + FormatKey("q", "salir"),
		))
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(successStyle.Render(m.status))
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	}
	return b.String()
}
