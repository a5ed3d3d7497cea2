package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/nudge/internal/cli/formatter"
	"github.com/alexanderramin/nudge/internal/contract"
	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/alexanderramin/nudge/internal/service"
	"github.com/spf13/cobra"
)

type listOptions struct {
	showCompleted bool
	view          contract.ViewMode
}

func runList(cmd *cobra.Command, app *App, opts listOptions) error {
	if opts.view == "" {
		opts.view = contract.ViewTodo
	}
	view, err := app.Board.Display(cmd.Context(), service.DisplayOptions{
		Surface:       contract.SurfacePopup,
		View:          opts.view,
		ShowCompleted: opts.showCompleted,
	})
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBoard(view.Model, 0))
	return nil
}

func newListCmd(app *App) *cobra.Command {
	var opts listOptions
	view := newViewFlag()

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the board: todo, upcoming and (optionally) completed",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.view = view.mode
			return runList(cmd, app, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.showCompleted, "completed", "c", false, "Include the completed section")
	cmd.Flags().Var(view, "view", "Which list to show")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	var sched scheduleFlags

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a todo",
		Long: "Add a todo. At least a target date or time is required; a missing date\n" +
			"means today and a missing time means 23:59. A start in the future keeps\n" +
			"the todo in Upcoming until then.",
		Example: "  nudge add pay rent -d 2025-07-01\n  nudge add standup notes -t 09:30 --start-time 09:00",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := domain.ScheduleInput{Text: strings.Join(args, " ")}
			sched.apply(cmd.Flags(), &in)

			if len(args) == 0 && app.interactive() {
				fields := todoFieldsFrom(in)
				if err := newTodoForm("New Todo", fields).Run(); err != nil {
					return err
				}
				in = fields.input()
			}

			todo, err := app.Board.AddTodo(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added %s %s",
				formatter.Bold(todo.Text), formatter.Dim("["+formatter.TruncID(todo.ID)+"]"))))
			return nil
		},
	}

	sched.bind(cmd.Flags())
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var sched scheduleFlags
	var text string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a todo's text, start or target",
		Long:  "Change a todo. Only the flags given are changed; pass --start-date none to clear the start.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := app.Board.ResolveTodoID(ctx, args[0])
			if err != nil {
				return err
			}
			current, err := app.Board.GetTodo(ctx, id)
			if err != nil {
				return err
			}

			in := domain.ScheduleInputFrom(current, app.location())
			if cmd.Flags().Changed("text") {
				in.Text = text
			}
			sched.apply(cmd.Flags(), &in)

			if cmd.Flags().NFlag() == 0 && app.interactive() {
				fields := todoFieldsFrom(in)
				if err := newTodoForm("Edit Todo", fields).Run(); err != nil {
					return err
				}
				in = fields.input()
			}

			todo, err := app.Board.UpdateTodo(ctx, id, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Updated "+formatter.Bold(todo.Text)))
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "New text")
	sched.bind(cmd.Flags())
	return cmd
}

func newCompletionCmd(app *App, use, short string, done bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := app.Board.ResolveTodoID(ctx, args[0])
			if err != nil {
				return err
			}
			todo, err := app.Board.SetCompleted(ctx, id, done)
			if err != nil {
				return err
			}
			verb := "Completed"
			if !done {
				verb = "Reopened"
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(verb+" "+formatter.Bold(todo.Text)))
			return nil
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	return newCompletionCmd(app, "done", "Mark a todo completed", true)
}

func newReopenCmd(app *App) *cobra.Command {
	return newCompletionCmd(app, "reopen", "Mark a completed todo open again", false)
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := app.Board.ResolveTodoID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Board.DeleteTodo(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Deleted "+formatter.Dim(formatter.TruncID(id))))
			return nil
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <dragged-id> <target-id>",
		Short: "Move a todo to another todo's position, switching the board to manual order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dragged, err := app.Board.ResolveTodoID(ctx, args[0])
			if err != nil {
				return err
			}
			target, err := app.Board.ResolveTodoID(ctx, args[1])
			if err != nil {
				return err
			}
			moved, err := app.Board.Reorder(ctx, dragged, target)
			if err != nil {
				return err
			}
			if !moved {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Nothing to move: both ids must be distinct todos in the Todo section."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Moved; the board now uses manual order"))
			return nil
		},
	}
}

func newAutoSortCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "autosort",
		Short: "Drop manual order and sort by urgency again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Board.AutoSort(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Sorted by urgency"))
			return nil
		},
	}
}
