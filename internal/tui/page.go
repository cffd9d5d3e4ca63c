package tui

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/schedview/internal/view"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripMarkup removes tags from footer markup and unescapes entities.
func StripMarkup(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(s, "")))
}

// RenderPage draws p as terminal text.
func RenderPage(p view.Page, st Styles) string {
	var b strings.Builder

	b.WriteString(st.Title.Render(p.Chrome.Title))
	b.WriteString("\n")

	var tabs []string
	for i, item := range p.Chrome.Nav {
		label := fmt.Sprintf("%d %s", i+1, item.Label)
		if item.Active {
			tabs = append(tabs, st.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, st.Tab.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	switch {
	case p.Schedule != nil:
		writeSchedule(&b, p.Chrome, *p.Schedule, st)
	case p.Grades != nil:
		b.WriteString(st.CardTitle.Render(p.Grades.Title))
		b.WriteString("\n")
		b.WriteString(st.Muted.Render(p.Grades.Notice))
		b.WriteString("\n")
	case p.Teachers != nil:
		writeTeachers(&b, *p.Teachers, st)
	}

	b.WriteString(st.Footer.Render(p.Clock.Date))
	b.WriteString("\n")
	if footer := StripMarkup(p.Chrome.Footer); footer != "" {
		b.WriteString(st.Footer.Render(footer))
		b.WriteString("\n")
	}
	return b.String()
}

func writeSchedule(b *strings.Builder, c view.Chrome, s view.ScheduleView, st Styles) {
	var weeks []string
	for _, w := range c.Weeks {
		if w.Active {
			weeks = append(weeks, st.ActiveWeek.Render(w.Label))
		} else {
			weeks = append(weeks, st.Week.Render(w.Label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, weeks...))
	b.WriteString("\n\n")

	day := s.DayName
	if day == "" {
		day = "-"
	}
	fmt.Fprintf(b, "‹ %s › %s: %d\n", st.Day.Render(day), s.PairsLabel, s.PairCount)

	for _, l := range s.Lessons {
		var card strings.Builder
		fmt.Fprintf(&card, "%s  %s\n", st.Muted.Render(l.Time), st.CardTitle.Render(l.Subject))
		card.WriteString(l.Teacher)
		if l.Room != "" {
			room := l.Room
			if l.Remote {
				room = st.Remote.Render(room)
			}
			card.WriteString("  ·  " + room)
		}
		b.WriteString(st.Card.Render(card.String()))
		b.WriteString("\n")
	}
}

func writeTeachers(b *strings.Builder, t view.TeachersView, st Styles) {
	b.WriteString(st.CardTitle.Render(t.Title))
	b.WriteString("\n")
	if t.Placeholder != "" {
		b.WriteString(st.Muted.Render(t.Placeholder))
		b.WriteString("\n")
		return
	}
	for _, tc := range t.Teachers {
		lines := []string{st.CardTitle.Render(tc.Name)}
		if tc.Subject != "" {
			lines = append(lines, tc.Subject)
		}
		if tc.Contact != "" {
			lines = append(lines, st.Muted.Render(tc.Contact))
		}
		b.WriteString(st.Card.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}
}
