package site

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/schedview/internal/loader"
	"github.com/ziadkadry99/schedview/internal/metrics"
	"github.com/ziadkadry99/schedview/internal/tables"
	"github.com/ziadkadry99/schedview/internal/view"
)

func newLive(t *testing.T) (*Live, http.Handler, *atomic.Int32) {
	t.Helper()
	var loads atomic.Int32
	load := func(ctx context.Context, lang string) (*tables.Tables, tables.Report) {
		loads.Add(1)
		return loadFixtures(t, lang), tables.Report{}
	}
	l, err := NewLive("ru", loadFixtures(t, "ru"), load, &view.Renderer{})
	if err != nil {
		t.Fatalf("NewLive: %v", err)
	}
	l.now = func() time.Time { return time.Date(2026, 10, 19, 14, 5, 9, 0, time.UTC) }
	l.ClockInterval = 10 * time.Millisecond

	r := chi.NewRouter()
	l.RegisterRoutes(r, r)
	return l, r, &loads
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestLivePage(t *testing.T) {
	_, h, _ := newLive(t)

	w := get(t, h, "/?tab=schedule&week=even&day=1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`id="current-day-name">Вторник<`,
		`data-clock="/ws/clock"`,
		`id="next-day" href="/?day=2&amp;lang=ru&amp;tab=schedule&amp;week=even"`,
		`19.10.2026 14:05:09`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}

	if w := get(t, h, "/?tab=news"); w.Code != http.StatusBadRequest {
		t.Errorf("unknown tab status = %d, want 400", w.Code)
	}
}

func TestLivePageJSON(t *testing.T) {
	_, h, _ := newLive(t)

	w := get(t, h, "/api/page?tab=teachers")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var p view.Page
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Teachers == nil || len(p.Teachers.Teachers) != 3 || p.Schedule != nil {
		t.Errorf("page = %+v", p)
	}
}

func TestLiveSchedule(t *testing.T) {
	_, h, _ := newLive(t)

	for _, day := range []string{"0", "monday", "7"} {
		w := get(t, h, "/api/schedule/"+day)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", day, w.Code)
		}
		var v view.ScheduleView
		if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if v.DayKey != "monday" || v.PairCount != 3 {
			t.Errorf("%s: schedule = %+v", day, v)
		}
	}

	if w := get(t, h, "/api/schedule/funday"); w.Code != http.StatusNotFound {
		t.Errorf("unknown day status = %d, want 404", w.Code)
	}
}

func TestLiveTeachersAndLanguages(t *testing.T) {
	_, h, loads := newLive(t)

	w := get(t, h, "/api/teachers?lang=en")
	var v view.TeachersView
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Title != "Teachers" || len(v.Teachers) != 3 {
		t.Errorf("teachers = %+v", v)
	}
	get(t, h, "/api/teachers?lang=en")
	if loads.Load() != 1 {
		t.Errorf("loads = %d, want 1 (English tables cached)", loads.Load())
	}
}

func TestLiveLanguagesShareTables(t *testing.T) {
	_, h, loads := newLive(t)

	for i := 0; i < 50; i++ {
		if w := get(t, h, fmt.Sprintf("/api/teachers?lang=x%d", i)); w.Code != http.StatusOK {
			t.Fatalf("lang=x%d status = %d", i, w.Code)
		}
	}
	get(t, h, "/api/teachers?lang=ru-RU")
	if loads.Load() != 1 {
		t.Errorf("loads = %d, want 1 (one per translation file)", loads.Load())
	}
}

func TestLiveCancelledRequestDoesNotPoisonCache(t *testing.T) {
	src, err := loader.New(fixtureDir)
	if err != nil {
		t.Fatalf("loader.New: %v", err)
	}
	load := func(ctx context.Context, lang string) (*tables.Tables, tables.Report) {
		opts := tables.DefaultOptions()
		opts.Language = lang
		return tables.Load(ctx, src, opts)
	}
	l, err := NewLive("ru", loadFixtures(t, "ru"), load, &view.Renderer{})
	if err != nil {
		t.Fatalf("NewLive: %v", err)
	}
	r := chi.NewRouter()
	l.RegisterRoutes(r, r)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/teachers?lang=en", nil).WithContext(ctx)
	r.ServeHTTP(httptest.NewRecorder(), req)

	var v view.TeachersView
	if err := json.Unmarshal(get(t, r, "/api/teachers?lang=en").Body.Bytes(), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(v.Teachers) != 3 {
		t.Errorf("teachers after cancelled request = %+v, want 3", v)
	}
}

func TestLiveInterruptedLoadIsRetried(t *testing.T) {
	var loads atomic.Int32
	load := func(ctx context.Context, lang string) (*tables.Tables, tables.Report) {
		if loads.Add(1) == 1 {
			return &tables.Tables{Language: lang}, tables.Report{Failed: map[string]error{
				tables.ResourceTeachers: &loader.FetchError{URL: "teachers.json", Err: context.DeadlineExceeded},
			}}
		}
		return loadFixtures(t, lang), tables.Report{}
	}
	l, err := NewLive("ru", loadFixtures(t, "ru"), load, &view.Renderer{})
	if err != nil {
		t.Fatalf("NewLive: %v", err)
	}
	r := chi.NewRouter()
	l.RegisterRoutes(r, r)

	get(t, r, "/api/teachers?lang=en")
	var v view.TeachersView
	if err := json.Unmarshal(get(t, r, "/api/teachers?lang=en").Body.Bytes(), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(v.Teachers) != 3 || loads.Load() != 2 {
		t.Errorf("teachers = %d, loads = %d, want 3 and 2", len(v.Teachers), loads.Load())
	}
	get(t, r, "/api/teachers?lang=en")
	if loads.Load() != 2 {
		t.Errorf("loads = %d, want 2 once a complete set is cached", loads.Load())
	}
}

func TestLiveReload(t *testing.T) {
	_, h, loads := newLive(t)

	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["days"] != float64(7) || body["teachers"] != float64(3) || body["schedule"] != true {
		t.Errorf("reload body = %v", body)
	}
	if loads.Load() != 1 {
		t.Errorf("loads = %d, want 1", loads.Load())
	}
}

func TestLiveStaticFiles(t *testing.T) {
	_, h, _ := newLive(t)
	if w := get(t, h, "/style.css"); w.Code != http.StatusOK || !strings.Contains(w.Header().Get("Content-Type"), "text/css") {
		t.Errorf("style.css: %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	if w := get(t, h, "/clock.js"); w.Code != http.StatusOK {
		t.Errorf("clock.js: %d", w.Code)
	}
}

func TestClockWebsocket(t *testing.T) {
	_, h, _ := newLive(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/clock?lang=en"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var first, second ClockFrame
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("read: %v", err)
	}
	if first.Time != "2:05:09 PM" || first.Date != "10/19/2026 2:05:09 PM" {
		t.Errorf("frame = %+v", first)
	}
	if first.Conn == "" || first.Conn != second.Conn {
		t.Errorf("connection ids = %q, %q", first.Conn, second.Conn)
	}
}

func clockClients(t *testing.T) float64 {
	t.Helper()
	families, err := metrics.Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() == "schedview_clock_clients" {
			return f.GetMetric()[0].GetGauge().GetValue()
		}
	}
	return 0
}

func TestClockStopsWhenClientLeaves(t *testing.T) {
	_, h, _ := newLive(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	before := clockClients(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/clock"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	var frame ClockFrame
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := clockClients(t); got != before+1 {
		t.Errorf("clients while connected = %v, want %v", got, before+1)
	}
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for clockClients(t) != before {
		if time.Now().After(deadline) {
			t.Fatalf("handler still running: clients = %v, want %v", clockClients(t), before)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHTMLFooter(t *testing.T) {
	h, err := NewHTMLRenderer(nil)
	if err != nil {
		t.Fatal(err)
	}
	got := string(h.FooterHTML(`© 2025 **MD-25** <a href="https://example.org">site</a>`))
	for _, want := range []string{"<strong>MD-25</strong>", `<a href="https://example.org">site</a>`} {
		if !strings.Contains(got, want) {
			t.Errorf("footer %q missing %q", got, want)
		}
	}
	if h.FooterHTML("  ") != "" {
		t.Error("blank footer should render nothing")
	}
}
