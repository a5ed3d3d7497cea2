package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/nudge/internal/cli/formatter"
	"github.com/alexanderramin/nudge/internal/contract"
	"github.com/spf13/cobra"
)

func newNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes"},
		Short:   "Manage notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, listOptions{view: contract.ViewNote})
		},
	}

	cmd.AddCommand(
		newNoteAddCmd(app),
		newNoteEditCmd(app),
		newNoteRemoveCmd(app),
		newNoteListCmd(app),
	)
	return cmd
}

func newNoteAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if text == "" && app.interactive() {
				if err := newNoteForm("New Note", &text).Run(); err != nil {
					return err
				}
			}
			note, err := app.Board.AddNote(cmd.Context(), text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added note %s",
				formatter.Dim("["+formatter.TruncID(note.ID)+"]"))))
			return nil
		},
	}
}

func newNoteEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace a note's text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := app.Board.ResolveNoteID(ctx, args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			if text == "" && app.interactive() {
				current, err := app.Board.GetNote(ctx, id)
				if err != nil {
					return err
				}
				text = current.Text
				if err := newNoteForm("Edit Note", &text).Run(); err != nil {
					return err
				}
			}
			if _, err := app.Board.UpdateNote(ctx, id, text); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Updated note "+formatter.Dim(formatter.TruncID(id))))
			return nil
		},
	}
}

func newNoteRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := app.Board.ResolveNoteID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Board.DeleteNote(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Deleted note "+formatter.Dim(formatter.TruncID(id))))
			return nil
		},
	}
}

func newNoteListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, listOptions{view: contract.ViewNote})
		},
	}
}
