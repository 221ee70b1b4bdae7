package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/focus/internal/cli/formatter"
	"github.com/alexanderramin/focus/internal/timer"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start or resume the countdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := app.newEngine()
			defer e.Close()

			verb := "Started"
			if err := e.Start(); err != nil {
				if !errors.Is(err, timer.ErrAlreadyRunning) {
					return err
				}
				verb = "Already running:"
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimerLine(verb, e.Snapshot(), app.Clock.Now()))
			return nil
		},
	}
}

func newPauseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the countdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := app.newEngine()
			defer e.Close()

			if !e.IsRunning() {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimerLine("Not running:", e.Snapshot(), app.Clock.Now()))
				return nil
			}
			e.Pause()
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimerLine("Paused at", e.Snapshot(), app.Clock.Now()))
			return nil
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Stop the countdown and restore the default length",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := app.newEngine()
			defer e.Close()

			e.Reset()
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimerLine("Reset to", e.Snapshot(), app.Clock.Now()))
			return nil
		},
	}
}

func newPresetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "preset [MINUTES]",
		Short: "Set the countdown length (pauses a running countdown)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			switch {
			case len(args) == 1:
				raw = args[0]
			case app.interactive():
				var err error
				if raw, err = promptPreset(app.Presets); err != nil {
					return err
				}
			default:
				return fmt.Errorf("minutes required, e.g. 'focus preset 15'")
			}

			minutes, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("%w: %q is not a number", timer.ErrInvalidPreset, raw)
			}
			if err := timer.ValidatePreset(minutes); err != nil {
				return err
			}

			e := app.newEngine()
			defer e.Close()

			if err := e.SetPreset(minutes); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimerLine("Preset", e.Snapshot(), app.Clock.Now()))
			return nil
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the countdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := app.newEngine()
			defer e.Close()

			snap := e.Snapshot()
			if short {
				line := snap.Display()
				if snap.Running() {
					line += " running"
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
				return nil
			}

			ctx := cmd.Context()
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimerStatus(formatter.TimerStatusData{
				Snapshot:   snap,
				Visible:    app.timerVisible(ctx),
				Now:        app.Clock.Now(),
				TodayCount: app.todayCount(ctx),
			}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only MM:SS and the running flag")

	return cmd
}
