package cli

import (
	"fmt"

	"github.com/alexanderramin/nudge/internal/cli/formatter"
	"github.com/alexanderramin/nudge/internal/service"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	var widget, collapsed switchFlag

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change widget settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.Board.UpdateSettings(cmd.Context(), service.SettingsPatch{
				WidgetEnabled:   widget.value,
				WidgetCollapsed: collapsed.value,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Settings"))
			fmt.Fprintf(out, "widget     %s\n", onOff(settings.WidgetEnabled))
			fmt.Fprintf(out, "collapsed  %s\n", onOff(settings.WidgetCollapsed))
			return nil
		},
	}

	cmd.Flags().Var(&widget, "widget", "Show the widget")
	cmd.Flags().Var(&collapsed, "collapsed", "Collapse the widget to a one-line badge")
	return cmd
}

func onOff(b bool) string {
	if b {
		return formatter.StyleGreen.Render("on")
	}
	return formatter.Dim("off")
}
