package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the timer panel on the dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Prefs.SetTimerVisible(cmd.Context(), true); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Timer shown")
			return nil
		},
	}
}

func newHideCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "hide",
		Short: "Hide the timer panel on the dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Prefs.SetTimerVisible(cmd.Context(), false); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Timer hidden")
			return nil
		},
	}
}
