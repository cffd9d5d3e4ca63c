package tui

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ziadkadry99/schedview/internal/cache"
	"github.com/ziadkadry99/schedview/internal/i18n"
	"github.com/ziadkadry99/schedview/internal/loader"
	"github.com/ziadkadry99/schedview/internal/schedule"
	"github.com/ziadkadry99/schedview/internal/tables"
	"github.com/ziadkadry99/schedview/internal/view"
)

// StateKey is the cache key holding the last viewer state.
const StateKey = "view.state"

// Options configures a Model.
type Options struct {
	Tables   *tables.Tables
	Renderer *view.Renderer
	// Cache persists the view state between runs. Optional.
	Cache *cache.Cache
	// Loader and LangDir are used to fetch the other language file when
	// the user switches language. Optional.
	Loader  *loader.Loader
	LangDir string
	// AutoWeek starts on today's week parity and weekday instead of the
	// stored state.
	AutoWeek bool
	Interval time.Duration
	Now      func() time.Time
	Styles   *Styles
}

type tickMsg time.Time

type languageMsg struct {
	lang         string
	translations schedule.Translations
	err          error
}

// Model is the bubbletea model of the interactive viewer.
type Model struct {
	opts   Options
	styles Styles
	state  view.State
	tables *tables.Tables
	now    time.Time
	width  int
	status string
}

// NewModel builds the viewer, restoring the cached state when present.
func NewModel(ctx context.Context, opts Options) Model {
	if opts.Renderer == nil {
		opts.Renderer = &view.Renderer{}
	}
	if opts.Tables == nil {
		opts.Tables = &tables.Tables{}
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	st := DefaultStyles()
	if opts.Styles != nil {
		st = *opts.Styles
	}

	state := view.NewState(opts.Tables.Language)
	if opts.Cache != nil {
		state = cache.Load(ctx, opts.Cache, StateKey, state)
	}
	state = state.SetLanguage(opts.Tables.Language).Normalize()

	now := opts.Now()
	if opts.AutoWeek {
		state = state.Today(now, opts.Tables.DayNames)
	}

	return Model{
		opts:   opts,
		styles: st,
		state:  state,
		tables: opts.Tables,
		now:    now,
	}
}

// State returns the current view state.
func (m Model) State() view.State { return m.state }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.Interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the clock.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles keys, clock ticks and language reloads.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		return m, m.tick()

	case languageMsg:
		if msg.err != nil {
			// Keep the previous table and language.
			log.Printf("tui: %v", msg.err)
			m.status = msg.err.Error()
			if m.state.Language == msg.lang && m.tables.Language != msg.lang {
				m.state = m.state.SetLanguage(m.tables.Language)
				return m, m.saveCmd()
			}
			return m, nil
		}
		m.status = ""
		m.tables.Translations = msg.translations
		m.tables.Language = msg.lang
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next := m.state
	var cmd tea.Cmd

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.save()
		return m, tea.Quit
	case "1":
		next = next.SelectTab(view.TabSchedule)
	case "2":
		next = next.SelectTab(view.TabGrades)
	case "3":
		next = next.SelectTab(view.TabTeachers)
	case "tab":
		next = next.NextTab()
	case "o":
		next = next.SwitchWeek(schedule.Odd)
	case "e":
		next = next.SwitchWeek(schedule.Even)
	case "w":
		next = next.ToggleWeek()
	case "left", "h":
		next = next.ChangeDay(-1)
	case "right", "l":
		next = next.ChangeDay(1)
	case "t":
		next = next.Today(m.opts.Now(), m.tables.DayNames)
	case "L":
		lang := "ru"
		if schedule.IsRussian(next.Language) {
			lang = "en"
		}
		next = next.SetLanguage(lang)
		cmd = m.loadLanguage(lang)
	default:
		return m, nil
	}

	if next == m.state {
		return m, cmd
	}
	m.state = next
	return m, tea.Batch(cmd, m.saveCmd())
}

func (m Model) loadLanguage(lang string) tea.Cmd {
	if m.opts.Loader == nil {
		return nil
	}
	l, dir := m.opts.Loader, m.opts.LangDir
	return func() tea.Msg {
		tr, err := tables.LoadTranslations(context.Background(), l, dir, lang)
		return languageMsg{lang: lang, translations: tr, err: err}
	}
}

func (m Model) save() {
	if m.opts.Cache != nil {
		m.opts.Cache.Save(context.Background(), StateKey, m.state)
	}
}

func (m Model) saveCmd() tea.Cmd {
	if m.opts.Cache == nil {
		return nil
	}
	return func() tea.Msg {
		m.save()
		return nil
	}
}

// View draws the current page.
func (m Model) View() string {
	page := m.opts.Renderer.Render(m.state, m.tables, m.now)
	out := RenderPage(page, m.styles)
	if m.status != "" {
		out += m.styles.Remote.Render(m.status) + "\n"
	}
	return out + m.styles.Muted.Render(m.helpLine()) + "\n"
}

func (m Model) helpLine() string {
	tr := m.opts.Renderer.Translator
	if tr == nil {
		tr = i18n.Default()
	}
	return tr.T(m.state.Language, "help_keys", nil)
}

// Run starts the interactive viewer and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, opts), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
