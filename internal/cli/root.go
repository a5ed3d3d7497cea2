package cli

import (
	"time"

	"github.com/alexanderramin/nudge/internal/repository"
	"github.com/alexanderramin/nudge/internal/service"
	"github.com/spf13/cobra"
)

// App holds what CLI commands need: the board service, the store's change
// stream and the widget settings from config.
type App struct {
	Board   service.BoardService
	Watcher repository.Watcher

	WidgetWidth   int
	WidgetRefresh time.Duration
	WatchInterval time.Duration

	// Location resolves typed dates and times; nil means time.Local.
	Location *time.Location

	// IsInteractive reports whether stdin is a terminal. The bare command
	// opens the board only when it is.
	IsInteractive func() bool
}

func (a *App) location() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "nudge" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "nudge",
		Short: "Deadline-aware todos and notes for the terminal",
		Long: "nudge keeps short-lived todos ordered by how close they are to their target,\n" +
			"with a compact widget view and a full interactive board.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runBoard(cmd, app)
			}
			return runList(cmd, app, listOptions{})
		},
	}

	root.AddCommand(
		newListCmd(app),
		newBoardCmd(app),
		newWidgetCmd(app),
		newAddCmd(app),
		newEditCmd(app),
		newDoneCmd(app),
		newReopenCmd(app),
		newRemoveCmd(app),
		newMoveCmd(app),
		newAutoSortCmd(app),
		newNoteCmd(app),
		newSettingsCmd(app),
		newImportCmd(app),
		newExportCmd(app),
	)

	return root
}
