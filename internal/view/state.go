// Package view holds the viewer state machine and turns loaded tables into
// plain view models for the HTML, terminal and MCP front ends.
package view

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ziadkadry99/schedview/internal/schedule"
)

// DaysInWeek bounds DayIndex; navigation wraps modulo this value.
const DaysInWeek = 7

// Tab is one of the three page sections.
type Tab string

const (
	TabSchedule Tab = "schedule"
	TabGrades   Tab = "grades"
	TabTeachers Tab = "teachers"
)

// Tabs lists the sections in navigation order.
var Tabs = []Tab{TabSchedule, TabGrades, TabTeachers}

// ErrUnknownTab is returned by ParseTab for names outside Tabs.
var ErrUnknownTab = errors.New("view: unknown tab")

// ParseTab validates s.
func ParseTab(s string) (Tab, error) {
	t := Tab(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tabs {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// Index returns the position of t in Tabs, or -1.
func (t Tab) Index() int {
	for i, known := range Tabs {
		if t == known {
			return i
		}
	}
	return -1
}

// State is the complete viewer state. Transitions return a new value.
type State struct {
	Language string          `json:"language"`
	Tab      Tab             `json:"tab"`
	Week     schedule.Parity `json:"week"`
	DayIndex int             `json:"day"`
}

// NewState returns the startup state: schedule tab, odd week, first day.
func NewState(lang string) State {
	if lang == "" {
		lang = "ru"
	}
	return State{Language: lang, Tab: TabSchedule, Week: schedule.Odd}
}

// SelectTab activates t. Unknown tabs leave the state unchanged.
func (s State) SelectTab(t Tab) State {
	if t.Index() < 0 {
		return s
	}
	s.Tab = t
	return s
}

// NextTab cycles through Tabs.
func (s State) NextTab() State {
	i := s.Tab.Index()
	s.Tab = Tabs[(i+1)%len(Tabs)]
	return s
}

// SwitchWeek selects w. Invalid parities leave the state unchanged.
func (s State) SwitchWeek(w schedule.Parity) State {
	if !w.Valid() {
		return s
	}
	s.Week = w
	return s
}

// ToggleWeek flips between odd and even.
func (s State) ToggleWeek() State {
	return s.SwitchWeek(s.Week.Other())
}

// ChangeDay moves DayIndex by delta, wrapping within the week.
func (s State) ChangeDay(delta int) State {
	s.DayIndex = ((s.DayIndex+delta)%DaysInWeek + DaysInWeek) % DaysInWeek
	return s
}

// SetLanguage switches the UI language. Callers reload the translation
// table for the new language.
func (s State) SetLanguage(lang string) State {
	if lang != "" {
		s.Language = lang
	}
	return s
}

// Today points the state at the current week parity and weekday. The day
// is looked up by its English key in days; without a match the index
// counts from Monday.
func (s State) Today(now time.Time, days *schedule.DayNames) State {
	s.Week = schedule.WeekType(now)
	key := strings.ToLower(now.Weekday().String())
	if i := days.IndexOf(key); i >= 0 {
		s.DayIndex = i
		return s
	}
	s.DayIndex = (schedule.CurrentDay(now) + DaysInWeek - 1) % DaysInWeek
	return s
}

// Normalize repairs fields a stored or user-supplied state may get wrong.
func (s State) Normalize() State {
	if s.Language == "" {
		s.Language = "ru"
	}
	if s.Tab.Index() < 0 {
		s.Tab = TabSchedule
	}
	if !s.Week.Valid() {
		s.Week = schedule.Odd
	}
	return s.ChangeDay(0)
}

// Query encodes s as URL parameters.
func (s State) Query() url.Values {
	q := url.Values{}
	q.Set("tab", string(s.Tab))
	q.Set("week", string(s.Week))
	q.Set("day", strconv.Itoa(s.DayIndex))
	q.Set("lang", s.Language)
	return q
}

// ParseQuery applies the parameters present in q on top of base.
func ParseQuery(q url.Values, base State) (State, error) {
	s := base
	if v := q.Get("tab"); v != "" {
		t, err := ParseTab(v)
		if err != nil {
			return base, err
		}
		s.Tab = t
	}
	if v := q.Get("week"); v != "" {
		w, err := schedule.ParseParity(v)
		if err != nil {
			return base, err
		}
		s.Week = w
	}
	if v := q.Get("day"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			return base, fmt.Errorf("invalid day %q: %w", v, err)
		}
		s.DayIndex = d
	}
	if v := q.Get("lang"); v != "" {
		s.Language = v
	}
	return s.Normalize(), nil
}

// ResolveDay turns a day argument into a DayIndex. arg is either an index
// in 0..DaysInWeek-1 or a day key of days, matched case-insensitively.
func ResolveDay(arg string, days *schedule.DayNames) (int, error) {
	arg = strings.TrimSpace(arg)
	if i, err := strconv.Atoi(arg); err == nil {
		if i < 0 || i >= DaysInWeek {
			return 0, fmt.Errorf("day index %d out of range 0-%d", i, DaysInWeek-1)
		}
		return i, nil
	}
	if i := days.IndexOf(strings.ToLower(arg)); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("unknown day %q", arg)
}
