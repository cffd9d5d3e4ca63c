package site

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/schedview/internal/tables"
	"github.com/ziadkadry99/schedview/internal/view"
)

// LoadFunc loads a fresh set of tables for lang.
type LoadFunc func(ctx context.Context, lang string) (*tables.Tables, tables.Report)

// Live serves pages rendered on request from tables held in memory.
type Live struct {
	mu       sync.RWMutex
	byLang   map[string]*tables.Tables // keyed by tables.LanguageFile
	load     LoadFunc
	lang     string
	renderer *view.Renderer
	html     *HTMLRenderer
	now      func() time.Time
	// ClockInterval is the period of websocket clock frames.
	ClockInterval time.Duration
}

// NewLive creates a live handler. initial is the table set for the default
// language; other languages are loaded through load on first use.
func NewLive(lang string, initial *tables.Tables, load LoadFunc, r *view.Renderer) (*Live, error) {
	h, err := NewHTMLRenderer(r.Translator)
	if err != nil {
		return nil, err
	}
	h.ClockURL = "/ws/clock"
	return &Live{
		byLang:        map[string]*tables.Tables{tables.LanguageFile(lang): initial},
		load:          load,
		lang:          lang,
		renderer:      r,
		html:          h,
		now:           time.Now,
		ClockInterval: time.Second,
	}, nil
}

// RegisterRoutes mounts the page, API and clock routes.
func (l *Live) RegisterRoutes(r chi.Router, clock chi.Router) {
	r.Get("/", l.handlePage)
	r.Get("/style.css", serveText("text/css; charset=utf-8", cssContent))
	r.Get("/clock.js", serveText("application/javascript", clockScript))
	r.Route("/api", func(r chi.Router) {
		r.Get("/page", l.handlePageJSON)
		r.Get("/schedule/{day}", l.handleSchedule)
		r.Get("/teachers", l.handleTeachers)
		r.Post("/reload", l.handleReload)
	})
	clock.Get("/ws/clock", l.handleClock)
}

func serveText(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write([]byte(body))
	}
}

// tablesFor returns the tables for lang, loading them on first use.
// Languages sharing a translation file share one table set. Without a
// loader every language shares the initial tables.
func (l *Live) tablesFor(ctx context.Context, lang string) *tables.Tables {
	key := tables.LanguageFile(lang)
	l.mu.RLock()
	t, ok := l.byLang[key]
	fallback := l.byLang[tables.LanguageFile(l.lang)]
	l.mu.RUnlock()
	if ok {
		return t
	}
	if l.load == nil {
		return fallback
	}

	// The set outlives the request that triggered it.
	t, report := l.load(context.WithoutCancel(ctx), lang)
	if report.Interrupted() {
		return t
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.byLang[key]; ok {
		return existing
	}
	l.byLang[key] = t
	return t
}

func (l *Live) state(r *http.Request) (view.State, error) {
	return view.ParseQuery(r.URL.Query(), view.NewState(l.lang))
}

func (l *Live) page(r *http.Request) (view.Page, error) {
	s, err := l.state(r)
	if err != nil {
		return view.Page{}, err
	}
	return l.renderer.Render(s, l.tablesFor(r.Context(), s.Language), l.now()), nil
}

func (l *Live) handlePage(w http.ResponseWriter, r *http.Request) {
	p, err := l.page(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := l.html.Write(&buf, p, QueryLinks{}); err != nil {
		log.Printf("site: rendering page: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (l *Live) handlePageJSON(w http.ResponseWriter, r *http.Request) {
	p, err := l.page(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleSchedule accepts a day key or an index, which wraps modulo 7.
func (l *Live) handleSchedule(w http.ResponseWriter, r *http.Request) {
	s, err := l.state(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t := l.tablesFor(r.Context(), s.Language)

	day := chi.URLParam(r, "day")
	if i, err := strconv.Atoi(day); err == nil {
		s = s.ChangeDay(i - s.DayIndex)
	} else if i := t.DayNames.IndexOf(day); i >= 0 {
		s.DayIndex = i
	} else {
		writeError(w, http.StatusNotFound, "unknown day "+day)
		return
	}
	writeJSON(w, http.StatusOK, l.renderer.Schedule(s, t))
}

func (l *Live) handleTeachers(w http.ResponseWriter, r *http.Request) {
	s, err := l.state(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, l.renderer.Teachers(s, l.tablesFor(r.Context(), s.Language)))
}

// handleReload drops every loaded table set and reloads the default
// language.
func (l *Live) handleReload(w http.ResponseWriter, r *http.Request) {
	if l.load == nil {
		writeError(w, http.StatusNotImplemented, "reload not configured")
		return
	}
	t, report := l.load(context.WithoutCancel(r.Context()), l.lang)
	if report.Interrupted() {
		writeError(w, http.StatusServiceUnavailable, "reload interrupted")
		return
	}
	l.mu.Lock()
	l.byLang = map[string]*tables.Tables{tables.LanguageFile(l.lang): t}
	l.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"language": l.lang,
		"days":     t.DayNames.Len(),
		"teachers": len(t.Teachers),
		"schedule": t.Schedule.HasDays(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
