package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/nudge/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the board with a browser-extension storage dump",
		Long: "Replace all todos, notes and settings with a chrome.storage.local JSON dump.\n" +
			"Malformed entries are skipped and reported; completed todos older than\n" +
			"seven days are dropped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}

			res, err := app.Board.Import(cmd.Context(), r)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Imported %d todos and %d notes",
				len(res.Snapshot.Todos), len(res.Snapshot.Notes))))
			for _, skipped := range res.Skipped {
				fmt.Fprintln(out, formatter.Dim("  skipped "+skipped.Error()))
			}
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the board as a browser-extension storage dump",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || args[0] == "-" {
				return app.Board.Export(cmd.Context(), cmd.OutOrStdout())
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			if err := app.Board.Export(cmd.Context(), f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", args[0], err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), formatter.Success("Exported to "+args[0]))
			return nil
		},
	}
}
