package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/nudge/internal/contract"
	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/spf13/pflag"
)

// viewFlag parses --view todo|note.
type viewFlag struct {
	mode contract.ViewMode
}

var _ pflag.Value = (*viewFlag)(nil)

func newViewFlag() *viewFlag { return &viewFlag{mode: contract.ViewTodo} }

func (f *viewFlag) String() string { return string(f.mode) }
func (f *viewFlag) Type() string   { return "todo|note" }

func (f *viewFlag) Set(s string) error {
	mode, ok := contract.ParseViewMode(strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return fmt.Errorf("must be todo or note")
	}
	f.mode = mode
	return nil
}

// switchFlag parses on|off into an optional bool; nil means not given.
type switchFlag struct {
	value *bool
}

var _ pflag.Value = (*switchFlag)(nil)

func (f *switchFlag) String() string {
	if f.value == nil {
		return ""
	}
	if *f.value {
		return "on"
	}
	return "off"
}

func (f *switchFlag) Type() string { return "on|off" }

func (f *switchFlag) Set(s string) error {
	var v bool
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1":
		v = true
	case "off", "false", "no", "0":
		v = false
	default:
		return fmt.Errorf("must be on or off")
	}
	f.value = &v
	return nil
}

// scheduleFlags are the date/time inputs shared by add and edit.
type scheduleFlags struct {
	startDate    string
	startTime    string
	deadlineDate string
	deadlineTime string
}

func (s *scheduleFlags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&s.deadlineDate, "deadline-date", "d", "", "Target date (YYYY-MM-DD, default today)")
	fs.StringVarP(&s.deadlineTime, "deadline-time", "t", "", "Target time (HH:MM, default 23:59)")
	fs.StringVar(&s.startDate, "start-date", "", "Start date (YYYY-MM-DD, default today)")
	fs.StringVar(&s.startTime, "start-time", "", "Start time (HH:MM, default 00:00)")
}

// apply copies the flags that were set on the command line onto in.
// "none" clears the start.
func (s *scheduleFlags) apply(fs *pflag.FlagSet, in *domain.ScheduleInput) {
	if fs.Changed("deadline-date") {
		in.DeadlineDate = s.deadlineDate
	}
	if fs.Changed("deadline-time") {
		in.DeadlineTime = s.deadlineTime
	}
	if fs.Changed("start-date") {
		in.StartDate = s.startDate
	}
	if fs.Changed("start-time") {
		in.StartTime = s.startTime
	}
	if strings.EqualFold(in.StartDate, "none") || strings.EqualFold(in.StartTime, "none") {
		in.StartDate, in.StartTime = "", ""
	}
}
