package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/nudge/internal/cli/formatter"
	"github.com/alexanderramin/nudge/internal/contract"
	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/alexanderramin/nudge/internal/repository"
	"github.com/alexanderramin/nudge/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, app)
		},
	}
}

func runBoard(cmd *cobra.Command, app *App) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := newBoardModel(ctx, app)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running board: %w", err)
	}
	return nil
}

type boardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Tab       key.Binding
	Toggle    key.Binding
	Move      key.Binding
	AutoSort  key.Binding
	Completed key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Widget    key.Binding
	Collapse  key.Binding
	Reload    key.Binding
	Cancel    key.Binding
	Quit      key.Binding
}

func defaultBoardKeys() boardKeyMap {
	return boardKeyMap{
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "todos/notes")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "done")),
		Move:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "pick/drop")),
		AutoSort:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "auto-sort")),
		Completed: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "completed")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Widget:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "widget")),
		Collapse:  key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "collapse")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k boardKeyMap) ShortHelp(view contract.ViewMode) []key.Binding {
	if view == contract.ViewNote {
		return []key.Binding{k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Tab, k.Quit}
	}
	return []key.Binding{
		k.Up, k.Down, k.Toggle, k.Move, k.AutoSort, k.Completed,
		k.Add, k.Edit, k.Delete, k.Widget, k.Tab, k.Quit,
	}
}

// boardLoadedMsg carries a fresh display model.
type boardLoadedMsg struct {
	view *service.BoardView
	err  error
}

// boardActionMsg reports the outcome of a write; the board reloads after it.
type boardActionMsg struct {
	status string
	err    error
}

// boardModel is the interactive popup: tabs for todos and notes, a cursor
// over visible items, and pick-then-drop reordering in place of dragging.
type boardModel struct {
	ctx  context.Context
	app  *App
	keys boardKeyMap

	view          contract.ViewMode
	showCompleted bool
	display       contract.DisplayModel
	settings      domain.Settings
	rows          []contract.DisplayItem
	cursor        int
	picked        string
	follow        string
	loaded        bool

	form       *huh.Form
	formSubmit func() tea.Cmd

	status string
	err    error
	events <-chan repository.ChangeEvent
	width  int
}

func newBoardModel(ctx context.Context, app *App) *boardModel {
	m := &boardModel{
		ctx:  ctx,
		app:  app,
		keys: defaultBoardKeys(),
		view: contract.ViewTodo,
	}
	if app.Watcher != nil {
		if events, err := app.Watcher.Watch(ctx, app.WatchInterval); err == nil {
			m.events = events
		} else {
			m.err = err
		}
	}
	return m
}

func (m *boardModel) Init() tea.Cmd {
	return tea.Batch(m.load(), waitForChange(m.events))
}

func (m *boardModel) load() tea.Cmd {
	opts := service.DisplayOptions{
		Surface:       contract.SurfacePopup,
		View:          m.view,
		ShowCompleted: m.showCompleted,
	}
	return func() tea.Msg {
		view, err := m.app.Board.Display(m.ctx, opts)
		return boardLoadedMsg{view: view, err: err}
	}
}

// act runs a write off the update loop and reports its outcome.
func (m *boardModel) act(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := fn(m.ctx)
		return boardActionMsg{status: status, err: err}
	}
}

func (m *boardModel) current() (contract.DisplayItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return contract.DisplayItem{}, false
	}
	return m.rows[m.cursor], true
}

func (m *boardModel) setDisplay(view *service.BoardView) {
	selected, _ := m.current()
	if m.follow != "" {
		selected.ID, m.follow = m.follow, ""
	}
	m.display = view.Model
	m.settings = view.Settings
	m.loaded = true

	m.rows = m.rows[:0]
	for _, section := range m.display.Sections {
		if !section.Hidden {
			m.rows = append(m.rows, section.Items...)
		}
	}
	for i, item := range m.rows {
		if item.ID == selected.ID {
			m.cursor = i
			return
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case boardLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.setDisplay(msg.view)
		return m, nil

	case boardActionMsg:
		m.status, m.err = msg.status, msg.err
		return m, m.load()

	case storeChangedMsg:
		return m, tea.Batch(m.load(), waitForChange(m.events))

	case watchClosedMsg:
		m.events = nil
		return m, nil
	}

	// An open form takes every remaining message, keys included.
	if m.form != nil {
		return m.updateForm(msg)
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(keyMsg)
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.picked, m.status = "", ""
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.view == contract.ViewTodo {
			m.view = contract.ViewNote
		} else {
			m.view = contract.ViewTodo
		}
		m.cursor, m.picked, m.status = 0, "", ""
		return m, m.load()

	case key.Matches(msg, m.keys.Reload):
		return m, m.load()

	case key.Matches(msg, m.keys.Add):
		return m, m.openAddForm()

	case key.Matches(msg, m.keys.Edit):
		return m, m.openEditForm()

	case key.Matches(msg, m.keys.Delete):
		return m, m.openDeleteForm()
	}

	if m.view != contract.ViewTodo {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		item, ok := m.current()
		if !ok {
			return m, nil
		}
		done := item.Status != domain.StatusCompleted
		return m, m.act(func(ctx context.Context) (string, error) {
			todo, err := m.app.Board.SetCompleted(ctx, item.ID, done)
			if err != nil {
				return "", err
			}
			if done {
				return "Completed " + todo.Text, nil
			}
			return "Reopened " + todo.Text, nil
		})

	case key.Matches(msg, m.keys.Move):
		return m, m.pickOrDrop()

	case key.Matches(msg, m.keys.AutoSort):
		m.picked = ""
		return m, m.act(func(ctx context.Context) (string, error) {
			return "Sorted by urgency", m.app.Board.AutoSort(ctx)
		})

	case key.Matches(msg, m.keys.Completed):
		m.showCompleted = !m.showCompleted
		return m, m.load()

	case key.Matches(msg, m.keys.Widget):
		enabled := !m.settings.WidgetEnabled
		return m, m.act(func(ctx context.Context) (string, error) {
			s, err := m.app.Board.UpdateSettings(ctx, service.SettingsPatch{WidgetEnabled: &enabled})
			return "Widget " + plainOnOff(s.WidgetEnabled), err
		})

	case key.Matches(msg, m.keys.Collapse):
		collapsed := !m.settings.WidgetCollapsed
		return m, m.act(func(ctx context.Context) (string, error) {
			s, err := m.app.Board.UpdateSettings(ctx, service.SettingsPatch{WidgetCollapsed: &collapsed})
			return "Widget collapsed " + plainOnOff(s.WidgetCollapsed), err
		})
	}
	return m, nil
}

// pickOrDrop is the keyboard form of drag and drop: the first press picks
// the item under the cursor, the second drops it onto the item under the
// cursor. Only items in the Todo section can be picked or targeted.
func (m *boardModel) pickOrDrop() tea.Cmd {
	item, ok := m.current()
	if !ok || !item.Draggable {
		m.status = "Only todos in the Todo section can be moved"
		return nil
	}
	if m.picked == "" {
		m.picked = item.ID
		m.status = "Moving " + item.Text + ": choose a position and press m"
		return nil
	}
	dragged, target := m.picked, item.ID
	m.picked = ""
	m.follow = dragged
	return m.act(func(ctx context.Context) (string, error) {
		moved, err := m.app.Board.Reorder(ctx, dragged, target)
		if err != nil || !moved {
			return "", err
		}
		return "Moved; manual order is on (s to auto-sort)", nil
	})
}

func (m *boardModel) openForm(form *huh.Form, submit func() tea.Cmd) tea.Cmd {
	m.form = form
	m.formSubmit = submit
	m.status = ""
	return form.Init()
}

func (m *boardModel) openAddForm() tea.Cmd {
	if m.view == contract.ViewNote {
		var text string
		return m.openForm(newNoteForm("New Note", &text), func() tea.Cmd {
			return m.act(func(ctx context.Context) (string, error) {
				_, err := m.app.Board.AddNote(ctx, text)
				return "Added note", err
			})
		})
	}

	fields := &todoFields{}
	return m.openForm(newTodoForm("New Todo", fields), func() tea.Cmd {
		return m.act(func(ctx context.Context) (string, error) {
			todo, err := m.app.Board.AddTodo(ctx, fields.input())
			return "Added " + todo.Text, err
		})
	})
}

func (m *boardModel) openEditForm() tea.Cmd {
	item, ok := m.current()
	if !ok {
		return nil
	}

	if m.view == contract.ViewNote {
		text := item.Text
		return m.openForm(newNoteForm("Edit Note", &text), func() tea.Cmd {
			return m.act(func(ctx context.Context) (string, error) {
				_, err := m.app.Board.UpdateNote(ctx, item.ID, text)
				return "Updated note", err
			})
		})
	}

	todo, err := m.app.Board.GetTodo(m.ctx, item.ID)
	if err != nil {
		m.err = err
		return nil
	}
	fields := todoFieldsFrom(domain.ScheduleInputFrom(todo, m.app.location()))
	return m.openForm(newTodoForm("Edit Todo", fields), func() tea.Cmd {
		return m.act(func(ctx context.Context) (string, error) {
			updated, err := m.app.Board.UpdateTodo(ctx, item.ID, fields.input())
			return "Updated " + updated.Text, err
		})
	})
}

func (m *boardModel) openDeleteForm() tea.Cmd {
	item, ok := m.current()
	if !ok {
		return nil
	}
	var confirmed bool
	title := fmt.Sprintf("Delete %q?", formatter.Truncate(item.Text, 40))
	note := m.view == contract.ViewNote
	return m.openForm(newConfirmForm(title, &confirmed), func() tea.Cmd {
		if !confirmed {
			return func() tea.Msg { return boardActionMsg{status: "Kept"} }
		}
		return m.act(func(ctx context.Context) (string, error) {
			if note {
				return "Deleted note", m.app.Board.DeleteNote(ctx, item.ID)
			}
			return "Deleted " + item.Text, m.app.Board.DeleteTodo(ctx, item.ID)
		})
	})
}

func (m *boardModel) closeForm() {
	m.form = nil
	m.formSubmit = nil
}

func (m *boardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.closeForm()
		m.status = "Cancelled"
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		submit := m.formSubmit
		m.closeForm()
		return m, tea.Batch(cmd, submit())
	case huh.StateAborted:
		m.closeForm()
		m.status = "Cancelled"
		return m, nil
	}
	return m, cmd
}

func plainOnOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m *boardModel) View() string {
	if m.form != nil {
		return m.form.View()
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString(formatter.Dim("loading…"))
		b.WriteString("\n")
	}

	row := 0
	for _, section := range m.display.Sections {
		if section.Hidden {
			continue
		}
		b.WriteString(formatter.Header(section.Title))
		b.WriteString("\n")
		if len(section.Items) == 0 {
			b.WriteString(formatter.Dim(section.Empty))
			b.WriteString("\n\n")
			continue
		}
		for _, item := range section.Items {
			b.WriteString(m.renderItem(item, row == m.cursor))
			b.WriteString("\n")
			row++
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(formatter.StyleGreen.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *boardModel) renderTabs() string {
	tab := func(label string, active bool) string {
		if active {
			return formatter.StyleHeader.Render("[" + label + "]")
		}
		return formatter.Dim(" " + label + " ")
	}
	tabs := tab("Todo", m.view == contract.ViewTodo) + " " + tab("Notes", m.view == contract.ViewNote)

	widget := "widget off"
	switch {
	case m.settings.WidgetEnabled && m.settings.WidgetCollapsed:
		widget = "widget collapsed"
	case m.settings.WidgetEnabled:
		widget = "widget on"
	}
	extra := []string{widget}
	if m.display.Manual && m.view == contract.ViewTodo {
		extra = append(extra, "manual order")
	}
	return tabs + "  " + formatter.Dim(strings.Join(extra, " · "))
}

func (m *boardModel) renderItem(item contract.DisplayItem, selected bool) string {
	cursor := "  "
	if selected {
		cursor = formatter.StyleHeader.Render("› ")
	}
	if item.ID == m.picked {
		cursor = formatter.StylePurple.Render("⇅ ")
	}

	width := 0
	if m.width > 0 {
		width = m.width - 4
	}

	if m.view == contract.ViewNote {
		return cursor + formatter.Truncate(item.Text, width) + "  " + formatter.Dim(item.MetaText)
	}

	text := item.Text
	if item.Status == domain.StatusCompleted {
		text = formatter.StyleDim.Strikethrough(true).Render(text)
	}
	line := cursor + formatter.Pill(item.Status, item.Pill, item.ColorClass) + " " + text
	if item.Status != domain.StatusCompleted && item.Status != domain.StatusUpcoming {
		line += " " + formatter.ClassStyle(item.ColorClass).Render(formatter.UrgencyBar(item.Urgency, 8))
	}
	return line + "\n    " + formatter.Dim(formatter.Truncate(item.MetaText, width))
}

func (m *boardModel) renderHelp() string {
	bindings := m.keys.ShortHelp(m.view)
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return formatter.Dim(strings.Join(parts, " · "))
}
