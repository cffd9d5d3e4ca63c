package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/schedview/internal/schedule"
	"github.com/ziadkadry99/schedview/internal/view"
)

// handleGetSchedule renders one day of the schedule as text.
func (s *Server) handleGetSchedule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := s.now()
	state := view.NewState(s.lang).Today(now, s.tables.DayNames)

	if w := request.GetString("week", ""); w != "" {
		p, err := schedule.ParseParity(w)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		state = state.SwitchWeek(p)
	}

	if day := request.GetString("day", ""); day != "" {
		i, err := view.ResolveDay(day, s.tables.DayNames)
		if err != nil {
			return mcp.NewToolResultError(err.Error() + "; call list_days for valid keys"), nil
		}
		state.DayIndex = i
	}

	return mcp.NewToolResultText(formatSchedule(s.renderer.Schedule(state, s.tables))), nil
}

func formatSchedule(v view.ScheduleView) string {
	var b strings.Builder
	name := v.DayName
	if name == "" {
		name = "(no day map loaded)"
	}
	fmt.Fprintf(&b, "# %s (%s week)\n\n", name, v.Week)
	fmt.Fprintf(&b, "%s: %d\n", v.PairsLabel, v.PairCount)
	if v.WeekFiltered {
		b.WriteString("Lessons of the other week are hidden.\n")
	}
	for i, l := range v.Lessons {
		fmt.Fprintf(&b, "\n%d. %s  %s\n   %s", i+1, l.Time, l.Subject, l.Teacher)
		if l.Room != "" {
			fmt.Fprintf(&b, ", %s", l.Room)
		}
		if l.Remote {
			b.WriteString(" [remote]")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// handleListTeachers returns the roster in file order.
func (s *Server) handleListTeachers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v := s.renderer.Teachers(view.NewState(s.lang), s.tables)
	if v.Placeholder != "" {
		return mcp.NewToolResultText(v.Placeholder), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", v.Title)
	for _, t := range v.Teachers {
		b.WriteString("- " + t.Name)
		if t.Subject != "" {
			b.WriteString(" | " + t.Subject)
		}
		if t.Contact != "" {
			b.WriteString(" | " + t.Contact)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleGetWeekType reports the week number and parity of a date. An
// explicit date is evaluated at noon; WeekNumber rounds up, so midnight
// would land in the previous week.
func (s *Server) handleGetWeekType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day := s.now()
	if d := request.GetString("date", ""); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, day.Location())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date %q: want YYYY-MM-DD", d)), nil
		}
		day = parsed.Add(12 * time.Hour)
	}
	n := schedule.WeekNumber(day)
	return mcp.NewToolResultText(fmt.Sprintf("%s: week %d, %s", day.Format("2006-01-02"), n, schedule.WeekParity(n))), nil
}

// handleListDays lists the day map in navigation order.
func (s *Server) handleListDays(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keys := s.tables.DayNames.Keys()
	if len(keys) == 0 {
		return mcp.NewToolResultError("day map not loaded"), nil
	}
	var b strings.Builder
	for i, k := range keys {
		label, _ := s.tables.DayNames.Label(k)
		fmt.Fprintf(&b, "%d %s %s\n", i, k, label)
	}
	return mcp.NewToolResultText(b.String()), nil
}
