package view

import (
	"time"

	"github.com/ziadkadry99/schedview/internal/i18n"
	"github.com/ziadkadry99/schedview/internal/metrics"
	"github.com/ziadkadry99/schedview/internal/schedule"
	"github.com/ziadkadry99/schedview/internal/tables"
)

// NavItem is one navigation button.
type NavItem struct {
	Tab    Tab    `json:"tab"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// WeekToggle is one of the two week buttons.
type WeekToggle struct {
	Week   schedule.Parity `json:"week"`
	Label  string          `json:"label"`
	Active bool            `json:"active"`
}

// Chrome is the page frame shared by every tab.
type Chrome struct {
	Title string       `json:"title"`
	Nav   []NavItem    `json:"nav"`
	Weeks []WeekToggle `json:"weeks"`
	// Footer is markup taken verbatim from the language file.
	Footer string `json:"footer"`
}

// LessonCard is a rendered pair.
type LessonCard struct {
	Time    string          `json:"time"`
	Subject string          `json:"subject"`
	Teacher string          `json:"teacher"`
	Room    string          `json:"room"`
	Remote  bool            `json:"remote"`
	Week    schedule.Parity `json:"week,omitempty"`
}

// ScheduleView is the schedule tab for one day.
type ScheduleView struct {
	DayIndex   int             `json:"dayIndex"`
	DayKey     string          `json:"dayKey"`
	DayName    string          `json:"dayName"`
	PairsLabel string          `json:"pairsLabel"`
	PairCount  int             `json:"pairCount"`
	Lessons    []LessonCard    `json:"lessons"`
	Week       schedule.Parity `json:"week"`
	// WeekFiltered is set when lessons of the other parity were hidden.
	WeekFiltered bool `json:"weekFiltered"`
}

// GradesView is the grades tab.
type GradesView struct {
	Title  string `json:"title"`
	Notice string `json:"notice"`
}

// TeacherCard is one roster entry.
type TeacherCard struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Contact string `json:"contact"`
}

// TeachersView is the teachers tab. Exactly one of Teachers and
// Placeholder is populated.
type TeachersView struct {
	Title       string        `json:"title"`
	Teachers    []TeacherCard `json:"teachers"`
	Placeholder string        `json:"placeholder,omitempty"`
}

// ClockView is the live date line. Date carries date and time together,
// Time only the time.
type ClockView struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Page is everything needed to draw one screen. Only the section of the
// active tab is set.
type Page struct {
	State    State         `json:"state"`
	Chrome   Chrome        `json:"chrome"`
	Schedule *ScheduleView `json:"schedule,omitempty"`
	Grades   *GradesView   `json:"grades,omitempty"`
	Teachers *TeachersView `json:"teachers,omitempty"`
	Clock    ClockView     `json:"clock"`
}

// Renderer builds view models. The zero value is ready to use.
type Renderer struct {
	// Translator supplies labels missing from the language file.
	Translator *i18n.Translator
	// WeekFilter hides lessons tagged with the other week parity.
	WeekFilter bool
}

var defaultRenderer = &Renderer{}

func (r *Renderer) translator() *i18n.Translator {
	if r.Translator != nil {
		return r.Translator
	}
	return i18n.Default()
}

// label looks region/name up in the loaded table first, then in the
// built-in catalogue.
func (r *Renderer) label(s State, t *tables.Tables, region, name string) string {
	if t != nil {
		if v, ok := t.Translations.Get(region, name); ok {
			return v
		}
	}
	v, _ := r.translator().Lookup(s.Language, i18n.Key(region, name))
	return v
}

// Chrome renders the header, navigation, week toggle and footer.
func (r *Renderer) Chrome(s State, t *tables.Tables) Chrome {
	c := Chrome{
		Title: r.label(s, t, "header", "title"),
	}
	for _, tab := range Tabs {
		c.Nav = append(c.Nav, NavItem{
			Tab:    tab,
			Label:  r.label(s, t, "nav", string(tab)),
			Active: tab == s.Tab,
		})
	}
	c.Weeks = []WeekToggle{
		{Week: schedule.Odd, Label: r.label(s, t, "schedule", "weekOdd"), Active: s.Week == schedule.Odd},
		{Week: schedule.Even, Label: r.label(s, t, "schedule", "weekEven"), Active: s.Week == schedule.Even},
	}
	if t != nil {
		c.Footer, _ = t.Translations.Get("footer", "copyright")
	}
	return c
}

// Schedule renders the day at s.DayIndex in day-map order.
func (r *Renderer) Schedule(s State, t *tables.Tables) ScheduleView {
	v := ScheduleView{
		DayIndex:   s.DayIndex,
		Week:       s.Week,
		PairsLabel: r.label(s, t, "schedule", "pairs"),
		Lessons:    []LessonCard{},
	}
	if t == nil {
		return v
	}

	key, ok := t.DayNames.KeyAt(s.DayIndex)
	if !ok {
		return v
	}
	v.DayKey = key
	v.DayName = key
	if name, ok := t.DayNames.Label(key); ok && name != "" {
		v.DayName = name
	}

	day, ok := t.Schedule.Day(key)
	if !ok {
		return v
	}
	for _, p := range day.Pairs {
		if r.WeekFilter && p.Week.Valid() && p.Week != s.Week {
			v.WeekFiltered = true
			continue
		}
		v.Lessons = append(v.Lessons, LessonCard{
			Time:    p.Time,
			Subject: p.Subject,
			Teacher: p.Teacher,
			Room:    p.Room,
			Remote:  schedule.IsRemoteLesson(p.Room),
			Week:    p.Week,
		})
	}
	v.PairCount = len(v.Lessons)
	return v
}

// Grades renders the grades placeholder section.
func (r *Renderer) Grades(s State, t *tables.Tables) GradesView {
	return GradesView{
		Title:  r.label(s, t, "grades", "title"),
		Notice: r.label(s, t, "grades", "notice"),
	}
}

// Teachers renders the roster in file order.
func (r *Renderer) Teachers(s State, t *tables.Tables) TeachersView {
	v := TeachersView{Title: r.label(s, t, "teachers", "title")}
	if t == nil || len(t.Teachers) == 0 {
		v.Placeholder = r.label(s, t, "teachers", "empty")
		return v
	}
	for _, tc := range t.Teachers {
		v.Teachers = append(v.Teachers, TeacherCard{
			Name:    tc.Name,
			Subject: tc.Subject,
			Contact: tc.Contact,
		})
	}
	return v
}

// Clock renders now for lang.
func (r *Renderer) Clock(now time.Time, lang string) ClockView {
	tm := schedule.FormatTime(now, lang)
	return ClockView{
		Date: schedule.FormatDate(now, lang) + " " + tm,
		Time: tm,
	}
}

// Render builds the full page for s.
func (r *Renderer) Render(s State, t *tables.Tables, now time.Time) Page {
	s = s.Normalize()
	p := Page{
		State:  s,
		Chrome: r.Chrome(s, t),
		Clock:  r.Clock(now, s.Language),
	}
	switch s.Tab {
	case TabGrades:
		g := r.Grades(s, t)
		p.Grades = &g
	case TabTeachers:
		tv := r.Teachers(s, t)
		p.Teachers = &tv
	default:
		sv := r.Schedule(s, t)
		p.Schedule = &sv
	}
	metrics.ObserveRender(string(s.Tab))
	return p
}

// RenderChrome renders the page frame with the default renderer.
func RenderChrome(s State, t *tables.Tables) Chrome { return defaultRenderer.Chrome(s, t) }

// RenderSchedule renders the current day with the default renderer.
func RenderSchedule(s State, t *tables.Tables) ScheduleView { return defaultRenderer.Schedule(s, t) }

// RenderGrades renders the grades section with the default renderer.
func RenderGrades(s State, t *tables.Tables) GradesView { return defaultRenderer.Grades(s, t) }

// RenderTeachers renders the roster with the default renderer.
func RenderTeachers(s State, t *tables.Tables) TeachersView { return defaultRenderer.Teachers(s, t) }

// RenderClock formats now for lang.
func RenderClock(now time.Time, lang string) ClockView { return defaultRenderer.Clock(now, lang) }

// Render builds a page with the default renderer.
func Render(s State, t *tables.Tables, now time.Time) Page {
	return defaultRenderer.Render(s, t, now)
}
