package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/focus/internal/cli/formatter"
	"github.com/alexanderramin/focus/internal/timer"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const customPreset = "custom"

// focusHuhTheme returns a huh theme using the formatter palette.
func focusHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// presetOptions lists the configured presets followed by a custom entry.
func presetOptions(presets []int) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(presets)+1)
	for _, p := range presets {
		options = append(options, huh.NewOption(formatter.FormatMinutes(p), strconv.Itoa(p)))
	}
	return append(options, huh.NewOption("Custom…", customPreset))
}

func presetSelectForm(presets []int, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Countdown length").
				Options(presetOptions(presets)...).
				Value(value),
		),
	).WithTheme(focusHuhTheme()).WithShowHelp(false)
}

func minutesInputForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Minutes").
				Placeholder("25").
				Value(value).
				Validate(validatePresetMinutes),
		),
	).WithTheme(focusHuhTheme()).WithShowHelp(false)
}

// promptPreset asks for a countdown length, offering presets first.
func promptPreset(presets []int) (string, error) {
	choice := customPreset
	if len(presets) > 0 {
		choice = strconv.Itoa(presets[0])
		if err := presetSelectForm(presets, &choice).Run(); err != nil {
			return "", fmt.Errorf("preset prompt: %w", err)
		}
		if choice != customPreset {
			return choice, nil
		}
	}

	var raw string
	if err := minutesInputForm(&raw).Run(); err != nil {
		return "", fmt.Errorf("preset prompt: %w", err)
	}
	return raw, nil
}

// validatePresetMinutes accepts a whole number of minutes up to one day.
func validatePresetMinutes(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || timer.ValidatePreset(v) != nil {
		return fmt.Errorf("enter a number from 1 to %d", timer.MaxPresetMinutes)
	}
	return nil
}
