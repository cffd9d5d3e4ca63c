package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/schedview/internal/i18n"
	"github.com/ziadkadry99/schedview/internal/view"
)

// Linker maps a view state to the URL that displays it.
type Linker interface {
	Href(s view.State) string
}

// StaticLinks points at the files written by Generator.
type StaticLinks struct{}

// Href returns the page file name for s.
func (StaticLinks) Href(s view.State) string { return PageName(s) }

// QueryLinks points at the live server's root with the state in the query.
type QueryLinks struct{ Base string }

// Href returns Base?tab=..&week=..&day=..&lang=..
func (q QueryLinks) Href(s view.State) string {
	base := q.Base
	if base == "" {
		base = "/"
	}
	return base + "?" + s.Query().Encode()
}

// PageName is the static file name of the page showing s. Grades and
// teachers pages do not depend on week or day.
func PageName(s view.State) string {
	switch s.Tab {
	case view.TabGrades:
		return "grades.html"
	case view.TabTeachers:
		return "teachers.html"
	default:
		return fmt.Sprintf("schedule-%s-%d.html", s.Week, s.DayIndex)
	}
}

type link struct {
	ID     string
	Label  string
	Href   string
	Active bool
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Page         view.Page
	Lang         string
	BasePath     string
	Nav          []link
	Weeks        []link
	PrevDay      string
	NextDay      string
	Footer       template.HTML
	UpdatedLabel string
	FilteredNote string
	ClockURL     string
}

// HTMLRenderer turns view pages into HTML documents.
type HTMLRenderer struct {
	tmpl       *template.Template
	md         goldmark.Markdown
	translator *i18n.Translator
	// ClockURL enables the websocket clock when set.
	ClockURL string
}

// NewHTMLRenderer parses the page template.
func NewHTMLRenderer(translator *i18n.Translator) (*HTMLRenderer, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	if translator == nil {
		translator = i18n.Default()
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.Linkify),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &HTMLRenderer{tmpl: tmpl, md: md, translator: translator}, nil
}

// FooterHTML renders footer markup from the language file. The text may
// mix Markdown and inline HTML.
func (r *HTMLRenderer) FooterHTML(markup string) template.HTML {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markup), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(markup))
	}
	return template.HTML(buf.String())
}

// Write renders p to w, using links to build navigation targets.
func (r *HTMLRenderer) Write(w io.Writer, p view.Page, links Linker) error {
	s := p.State
	data := pageData{
		Page:         p,
		Lang:         s.Language,
		Footer:       r.FooterHTML(p.Chrome.Footer),
		UpdatedLabel: r.translator.T(s.Language, "clock_updated", nil),
		ClockURL:     r.ClockURL,
		PrevDay:      links.Href(s.ChangeDay(-1)),
		NextDay:      links.Href(s.ChangeDay(1)),
	}
	for _, item := range p.Chrome.Nav {
		data.Nav = append(data.Nav, link{
			Label:  item.Label,
			Href:   links.Href(s.SelectTab(item.Tab)),
			Active: item.Active,
		})
	}
	for _, wk := range p.Chrome.Weeks {
		data.Weeks = append(data.Weeks, link{
			ID:     string(wk.Week) + "-week-btn",
			Label:  wk.Label,
			Href:   links.Href(s.SwitchWeek(wk.Week)),
			Active: wk.Active,
		})
	}
	if p.Schedule != nil && p.Schedule.WeekFiltered {
		data.FilteredNote = r.translator.T(s.Language, "schedule_filtered", map[string]any{"Week": data.weekLabel()})
	}
	return r.tmpl.Execute(w, data)
}

func (d pageData) weekLabel() string {
	for _, w := range d.Weeks {
		if w.Active {
			return w.Label
		}
	}
	return string(d.Page.State.Week)
}
