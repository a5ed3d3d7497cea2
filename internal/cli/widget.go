package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/nudge/internal/cli/formatter"
	"github.com/alexanderramin/nudge/internal/contract"
	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/alexanderramin/nudge/internal/repository"
	"github.com/alexanderramin/nudge/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWidgetCmd(app *App) *cobra.Command {
	view := newViewFlag()
	var watch bool
	var width int
	var refresh time.Duration

	cmd := &cobra.Command{
		Use:   "widget",
		Short: "Print the compact widget: open todos by urgency, or notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("width") {
				width = app.WidgetWidth
			}
			if !cmd.Flags().Changed("refresh") {
				refresh = app.WidgetRefresh
			}

			if !watch {
				out, err := renderWidget(cmd.Context(), app, view.mode, width)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			m := newWidgetModel(ctx, app, view.mode, width, refresh)
			p := tea.NewProgram(m,
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("running widget: %w", err)
			}
			if wm, ok := final.(*widgetModel); ok && wm.err != nil {
				return wm.err
			}
			return nil
		},
	}

	cmd.Flags().Var(view, "view", "Which list to show")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep running and redraw when the board changes")
	cmd.Flags().IntVar(&width, "width", 0, "Truncate lines to this many columns (0 = no limit)")
	cmd.Flags().DurationVar(&refresh, "refresh", 0, "Redraw at least this often so colors follow the clock")
	return cmd
}

func renderWidget(ctx context.Context, app *App, view contract.ViewMode, width int) (string, error) {
	bv, err := app.Board.Display(ctx, service.DisplayOptions{Surface: contract.SurfaceWidget, View: view})
	if err != nil {
		return "", err
	}
	return formatter.FormatWidget(bv.Model, bv.Settings, width), nil
}

// widgetLoadedMsg carries a freshly rendered widget.
type widgetLoadedMsg struct {
	out string
	err error
}

// widgetTickMsg redraws so urgency colors advance with the clock.
type widgetTickMsg struct{}

// storeChangedMsg wraps a change event from the store watcher.
type storeChangedMsg struct {
	event repository.ChangeEvent
}

// watchClosedMsg is sent once the change stream ends.
type watchClosedMsg struct{}

type widgetModel struct {
	ctx     context.Context
	app     *App
	view    contract.ViewMode
	width   int
	refresh time.Duration
	events  <-chan repository.ChangeEvent
	out     string
	err     error
	quit    key.Binding
}

func newWidgetModel(ctx context.Context, app *App, view contract.ViewMode, width int, refresh time.Duration) *widgetModel {
	m := &widgetModel{
		ctx:     ctx,
		app:     app,
		view:    view,
		width:   width,
		refresh: refresh,
		quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	if app.Watcher != nil {
		events, err := app.Watcher.Watch(ctx, app.WatchInterval)
		if err != nil {
			m.err = err
		} else {
			m.events = events
		}
	}
	return m
}

func (m *widgetModel) Init() tea.Cmd {
	if m.err != nil {
		return tea.Quit
	}
	return tea.Batch(m.load(), waitForChange(m.events), m.tick())
}

func (m *widgetModel) load() tea.Cmd {
	return func() tea.Msg {
		out, err := renderWidget(m.ctx, m.app, m.view, m.width)
		return widgetLoadedMsg{out: out, err: err}
	}
}

func (m *widgetModel) tick() tea.Cmd {
	if m.refresh <= 0 {
		return nil
	}
	return tea.Tick(m.refresh, func(time.Time) tea.Msg { return widgetTickMsg{} })
}

// waitForChange blocks on the next change event. A nil channel never
// delivers, so the widget then relies on the refresh tick alone.
func waitForChange(events <-chan repository.ChangeEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return watchClosedMsg{}
		}
		return storeChangedMsg{event: ev}
	}
}

// affectsWidget reports whether a change should trigger a redraw. The todo
// view follows todos and settings; the note view follows notes and settings.
func affectsWidget(view contract.ViewMode, ev repository.ChangeEvent) bool {
	if ev.Area != "" && ev.Area != repository.AreaLocal {
		return false
	}
	if ev.Has(domain.KeySettings) {
		return true
	}
	if view == contract.ViewNote {
		return ev.Has(domain.KeyNotes)
	}
	return ev.Has(domain.KeyTodos)
}

func (m *widgetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case widgetLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.out = msg.out
		return m, nil

	case storeChangedMsg:
		if affectsWidget(m.view, msg.event) {
			return m, tea.Batch(m.load(), waitForChange(m.events))
		}
		return m, waitForChange(m.events)

	case watchClosedMsg:
		m.events = nil
		return m, nil

	case widgetTickMsg:
		return m, tea.Batch(m.load(), m.tick())

	case tea.KeyMsg:
		if key.Matches(msg, m.quit) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *widgetModel) View() string {
	if m.out == "" {
		return formatter.Dim("loading…")
	}
	return m.out + "\n" + formatter.Dim("q quit")
}
