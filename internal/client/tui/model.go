package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"tasklist/internal/client/store"
	"tasklist/internal/domains/todo/model/dto"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

const (
	msgLoading    = "Loading..."
	msgEmpty      = "No todos yet. Add one above!"
	titleMaxChars = 255

	defaultWidth  = 80
	defaultHeight = 20
	chromeHeight  = 6
)

// Store is the client-side cache the UI reads from and mutates through.
type Store interface {
	Load(ctx context.Context) ([]dto.TodoResponse, error)
	Refetch(ctx context.Context) ([]dto.TodoResponse, error)
	Create(ctx context.Context, title string) (dto.TodoResponse, error)
	Toggle(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Snapshot() ([]dto.TodoResponse, bool)
}

type (
	loadedMsg  struct{ err error }
	createdMsg struct{ err error }
	mutatedMsg struct{ err error }
)

type keyMap struct {
	add     key.Binding
	toggle  key.Binding
	remove  key.Binding
	refetch key.Binding
	quit    key.Binding
	submit  key.Binding
	cancel  key.Binding
}

var keys = keyMap{
	add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	remove:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	refetch: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

type Model struct {
	store   Store
	timeout time.Duration

	list  list.Model
	input textinput.Model

	adding   bool
	creating bool
	loaded   bool
	status   string
}

func New(s Store, timeout time.Duration) Model {
	l := list.New(nil, itemDelegate{}, defaultWidth, defaultHeight-chromeHeight)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.Styles.PaginationStyle = helpStyle

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = titleMaxChars
	ti.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		store:   s,
		timeout: timeout,
		list:    l,
		input:   ti,
	}
}

func (m Model) Init() tea.Cmd {
	return m.run(func(ctx context.Context) tea.Msg {
		_, err := m.store.Load(ctx)

		return loadedMsg{err: err}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, max(msg.Height-chromeHeight, 1))

		return m, nil
	case loadedMsg:
		return m.refresh(msg.err), nil
	case mutatedMsg:
		return m.refresh(msg.err), nil
	case createdMsg:
		m.creating = false

		if msg.err == nil || errors.Is(msg.err, store.ErrStale) {
			m.input.SetValue("")
			m.input.Blur()
			m.adding = false
		}

		return m.refresh(msg.err), nil
	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}

		return m.updateBrowsing(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.submit):
		if m.creating {
			return m, nil
		}

		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.status = "Title cannot be empty"

			return m, nil
		}

		m.creating = true
		m.status = ""

		return m, m.run(func(ctx context.Context) tea.Msg {
			_, err := m.store.Create(ctx, title)

			return createdMsg{err: err}
		})
	case key.Matches(msg, keys.cancel):
		m.adding = false
		m.input.Blur()

		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.add):
		m.adding = true
		m.status = ""

		return m, m.input.Focus()
	case key.Matches(msg, keys.refetch):
		return m, m.run(func(ctx context.Context) tea.Msg {
			_, err := m.store.Refetch(ctx)

			return loadedMsg{err: err}
		})
	case key.Matches(msg, keys.toggle):
		todo, ok := m.selected()
		if !ok {
			return m, nil
		}

		return m, m.run(func(ctx context.Context) tea.Msg {
			return mutatedMsg{err: m.store.Toggle(ctx, todo.ID)}
		})
	case key.Matches(msg, keys.remove):
		todo, ok := m.selected()
		if !ok {
			return m, nil
		}

		return m, m.run(func(ctx context.Context) tea.Msg {
			return mutatedMsg{err: m.store.Delete(ctx, todo.ID)}
		})
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

// refresh redraws the list from the store cache. On error the previous list
// stays on screen and the error goes to the status line.
func (m Model) refresh(err error) Model {
	m.status = ""

	if err != nil {
		log.Error().Err(err).Msg("todo operation failed")

		m.status = statusFor(err)
	}

	todos, loaded := m.store.Snapshot()
	if loaded {
		m.loaded = true
		m.list.SetItems(toListItems(todos))
	}

	return m
}

func (m Model) selected() (dto.TodoResponse, bool) {
	item, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return dto.TodoResponse{}, false
	}

	return item.todo, true
}

func (m Model) run(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		return fn(ctx)
	}
}

func statusFor(err error) string {
	if errors.Is(err, store.ErrCreateInFlight) {
		return "Still adding the previous todo"
	}

	return "Error: " + err.Error()
}

func (m Model) View() string {
	todos, _ := m.store.Snapshot()

	done := 0
	for _, todo := range todos {
		if todo.Completed {
			done++
		}
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s   %s %d  %s %d  %s %d\n\n",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(todos)-done,
		accentStyle.Render("Total"), len(todos),
	)

	if m.adding {
		b.WriteString(m.input.View())

		if m.creating {
			b.WriteString(" " + mutedStyle.Render("adding..."))
		}

		b.WriteString("\n\n")
	}

	switch {
	case !m.loaded:
		b.WriteString(mutedStyle.Render(msgLoading))
	case len(m.list.Items()) == 0:
		b.WriteString(mutedStyle.Render(msgEmpty))
	default:
		b.WriteString(m.list.View())
	}

	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n" + errorStyle.Render(m.status))
	}

	b.WriteString("\n" + helpStyle.Render(m.help()))

	return b.String()
}

func (m Model) help() string {
	bindings := []key.Binding{keys.add, keys.toggle, keys.remove, keys.refetch, keys.quit}
	if m.adding {
		bindings = []key.Binding{keys.submit, keys.cancel}
	}

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		parts = append(parts, binding.Help().Key+" "+binding.Help().Desc)
	}

	return strings.Join(parts, " • ")
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(s Store, timeout time.Duration) error {
	if _, err := tea.NewProgram(New(s, timeout), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run terminal ui: %w", err)
	}

	return nil
}
