package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/nudge/internal/cli/formatter"
	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// nudgeHuhTheme returns a huh theme matching the formatter palette.
func nudgeHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// todoFields holds form-bound values for the add and edit todo forms.
type todoFields struct {
	text         string
	startDate    string
	startTime    string
	deadlineDate string
	deadlineTime string
}

func todoFieldsFrom(in domain.ScheduleInput) *todoFields {
	return &todoFields{
		text:         in.Text,
		startDate:    in.StartDate,
		startTime:    in.StartTime,
		deadlineDate: in.DeadlineDate,
		deadlineTime: in.DeadlineTime,
	}
}

func (f *todoFields) input() domain.ScheduleInput {
	return domain.ScheduleInput{
		Text:         f.text,
		StartDate:    f.startDate,
		StartTime:    f.startTime,
		DeadlineDate: f.deadlineDate,
		DeadlineTime: f.deadlineTime,
	}
}

func newTodoForm(title string, f *todoFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder("What needs doing?").
				Value(&f.text).
				Validate(validateRequired),
			huh.NewInput().
				Title("Target date").
				Description("YYYY-MM-DD, blank for today").
				Value(&f.deadlineDate).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Target time").
				Description("HH:MM, blank for 23:59").
				Value(&f.deadlineTime).
				Validate(validateOptionalTime),
			huh.NewInput().
				Title("Start date").
				Description("optional; the todo stays in Upcoming until it starts").
				Value(&f.startDate).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Start time").
				Description("HH:MM, blank for 00:00").
				Value(&f.startTime).
				Validate(validateOptionalTime),
		),
	).WithTheme(nudgeHuhTheme()).WithShowHelp(false)
}

func newNoteForm(title string, text *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Placeholder("Anything worth keeping").
				Value(text).
				Validate(validateRequired),
		),
	).WithTheme(nudgeHuhTheme()).WithShowHelp(false)
}

func newConfirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Keep").
				Value(result),
		),
	).WithTheme(nudgeHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// validateOptionalDate accepts empty or YYYY-MM-DD.
func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateOptionalTime accepts empty or HH:MM.
func validateOptionalTime(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(domain.TimeLayout, s); err != nil {
		return fmt.Errorf("use HH:MM format")
	}
	return nil
}
