package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	defaultStartTime    = "00:00"
	defaultDeadlineTime = "23:59"
)

var (
	ErrEmptyText       = errors.New("text is required")
	ErrMissingDeadline = errors.New("target needs at least a date or a time")
	ErrStartInPast     = errors.New("start is already in the past")
	ErrDeadlineInPast  = errors.New("target is already in the past")
	ErrInvalidDateTime = errors.New("invalid date or time")
)

// ScheduleInput is the raw form payload for creating or editing a todo.
// Dates use YYYY-MM-DD and times HH:MM; any field may be empty.
type ScheduleInput struct {
	Text         string
	StartDate    string
	StartTime    string
	DeadlineDate string
	DeadlineTime string
}

// Schedule is a validated ScheduleInput.
type Schedule struct {
	Text     string
	StartAt  *time.Time
	Deadline time.Time
}

// ScheduleInputFrom pre-fills a form from an existing todo.
func ScheduleInputFrom(t Todo, loc *time.Location) ScheduleInput {
	in := ScheduleInput{
		Text:         t.Text,
		DeadlineDate: t.Deadline.In(loc).Format(DateLayout),
		DeadlineTime: t.Deadline.In(loc).Format(TimeLayout),
	}
	if t.StartAt != nil {
		in.StartDate = t.StartAt.In(loc).Format(DateLayout)
		in.StartTime = t.StartAt.In(loc).Format(TimeLayout)
	}
	return in
}

// NormalizeText trims s and rejects blank text.
func NormalizeText(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyText
	}
	return s, nil
}

// ParseSchedule validates a form payload against now, interpreting dates and
// times in loc. A missing date means today; a missing time means 00:00 for
// the start and 23:59 for the target. Past instants are only rejected when
// their date was today or omitted.
func ParseSchedule(in ScheduleInput, now time.Time, loc *time.Location) (Schedule, error) {
	text, err := NormalizeText(in.Text)
	if err != nil {
		return Schedule{}, err
	}
	deadlineDate := strings.TrimSpace(in.DeadlineDate)
	deadlineTime := strings.TrimSpace(in.DeadlineTime)
	if deadlineDate == "" && deadlineTime == "" {
		return Schedule{}, ErrMissingDeadline
	}
	startDate := strings.TrimSpace(in.StartDate)
	startTime := strings.TrimSpace(in.StartTime)

	today := now.In(loc).Format(DateLayout)

	startAt, err := combineDateTime(startDate, startTime, defaultStartTime, today, loc)
	if err != nil {
		return Schedule{}, fmt.Errorf("start: %w", err)
	}
	deadline, err := combineDateTime(deadlineDate, deadlineTime, defaultDeadlineTime, today, loc)
	if err != nil {
		return Schedule{}, fmt.Errorf("target: %w", err)
	}

	if startAt != nil && startAt.Before(now) && (startDate == "" || startDate == today) {
		return Schedule{}, ErrStartInPast
	}
	if deadline.Before(now) && (deadlineDate == "" || deadlineDate == today) {
		return Schedule{}, ErrDeadlineInPast
	}

	return Schedule{Text: text, StartAt: startAt, Deadline: *deadline}, nil
}

func combineDateTime(date, clock, defaultClock, today string, loc *time.Location) (*time.Time, error) {
	if date == "" && clock == "" {
		return nil, nil
	}
	if date == "" {
		date = today
	}
	if clock == "" {
		clock = defaultClock
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q %q", ErrInvalidDateTime, date, clock)
	}
	return &t, nil
}
