package site

// pageTemplate is the Go html/template for every schedule page. Element
// ids match the ones the published site's scripts and styles rely on.
const pageTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Page.Chrome.Title}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body data-lang="{{.Lang}}"{{if .ClockURL}} data-clock="{{.ClockURL}}"{{end}}>
  <header>
    <h1>{{.Page.Chrome.Title}}</h1>
    <div class="date-line"><span id="current-date">{{.Page.Clock.Date}}</span></div>
    <nav>
      {{range .Nav}}<a class="nav-button{{if .Active}} active{{end}}" href="{{.Href}}">{{.Label}}</a>
      {{end}}
    </nav>
  </header>
  <main>
    {{with .Page.Schedule}}
    <section id="schedule-section">
      <div class="week-switch">
        {{range $.Weeks}}<a id="{{.ID}}" class="week-button{{if .Active}} active{{end}}" href="{{.Href}}">{{.Label}}</a>
        {{end}}
      </div>
      <div class="day-nav">
        <a id="prev-day" href="{{$.PrevDay}}">&larr;</a>
        <h2 id="current-day-name">{{.DayName}}</h2>
        <a id="next-day" href="{{$.NextDay}}">&rarr;</a>
      </div>
      <p class="pair-line">{{.PairsLabel}}: <span id="pair-count">{{.PairCount}}</span>{{if .WeekFiltered}} <span class="filtered">({{$.FilteredNote}})</span>{{end}}</p>
      <div id="lessons-container">
        {{range .Lessons}}<div class="lesson-card{{if .Remote}} remote{{end}}">
          <div class="lesson-time">{{.Time}}</div>
          <div class="lesson-subject">{{.Subject}}</div>
          <div class="lesson-teacher">{{.Teacher}}</div>
          <div class="lesson-room">{{.Room}}</div>
        </div>
        {{end}}
      </div>
    </section>
    {{end}}
    {{with .Page.Grades}}
    <section id="grades-section">
      <div id="grades-container">
        <h2>{{.Title}}</h2>
        <p>{{.Notice}}</p>
      </div>
    </section>
    {{end}}
    {{with .Page.Teachers}}
    <section id="teachers-section">
      <div id="teachers-container">
        <h2>{{.Title}}</h2>
        {{if .Placeholder}}<p>{{.Placeholder}}</p>{{end}}
        {{range .Teachers}}<div class="teacher-card">
          <h3>{{.Name}}</h3>
          <p>{{.Subject}}</p>
          <p>{{.Contact}}</p>
        </div>
        {{end}}
      </div>
    </section>
    {{end}}
  </main>
  <footer>
    {{.Footer}}
    <p class="updated">{{.UpdatedLabel}} <span id="update-time">{{.Page.Clock.Time}}</span></p>
  </footer>
  <script src="{{.BasePath}}clock.js"></script>
</body>
</html>`

// cssContent is the stylesheet shipped with every site.
const cssContent = `:root {
  --bg: #f4f5f6;
  --fg: #101f38;
  --accent: #8bc34a;
  --muted: #6b7685;
  --card: #ffffff;
  --border: #dce0e5;
  --remote: #2196f3;
}
* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, sans-serif; background: var(--bg); color: var(--fg); }
header, main, footer { max-width: 760px; margin: 0 auto; padding: 1rem; }
h1 { margin: 0 0 .25rem; }
.date-line { color: var(--muted); font-size: .9rem; }
nav { display: flex; gap: .5rem; margin-top: 1rem; }
.nav-button, .week-button { padding: .4rem .8rem; border-radius: 6px; border: 1px solid var(--border); color: inherit; text-decoration: none; background: var(--card); }
.nav-button.active, .week-button.active { background: var(--fg); color: #fff; border-color: var(--fg); }
.week-switch { display: flex; gap: .5rem; }
.day-nav { display: flex; align-items: center; justify-content: space-between; margin: 1rem 0 .5rem; }
.day-nav a { font-size: 1.5rem; text-decoration: none; color: var(--fg); }
.pair-line { color: var(--muted); }
.lesson-card, .teacher-card { background: var(--card); border: 1px solid var(--border); border-left: 4px solid var(--accent); border-radius: 6px; padding: .75rem 1rem; margin-bottom: .75rem; }
.lesson-card.remote { border-left-color: var(--remote); }
.lesson-time, .lesson-room { color: var(--muted); font-size: .9rem; }
.lesson-subject { font-weight: 600; }
footer { color: var(--muted); font-size: .85rem; }
`

// clockScript keeps #current-date and #update-time current. With a
// data-clock attribute it follows the server's websocket frames, otherwise
// it formats the local time every second.
const clockScript = `(function () {
  var body = document.body;
  var locale = body.dataset.lang === 'ru' ? 'ru-RU' : 'en-US';
  function show(date, time) {
    var d = document.getElementById('current-date');
    if (d) d.textContent = date;
    var t = document.getElementById('update-time');
    if (t) t.textContent = time;
  }
  function local() {
    var now = new Date();
    var time = now.toLocaleTimeString(locale);
    show(now.toLocaleDateString(locale) + ' ' + time, time);
  }
  if (body.dataset.clock && window.WebSocket) {
    var scheme = location.protocol === 'https:' ? 'wss://' : 'ws://';
    var ws = new WebSocket(scheme + location.host + body.dataset.clock);
    ws.onmessage = function (ev) {
      var f = JSON.parse(ev.data);
      show(f.date, f.time);
    };
    ws.onclose = function () { setInterval(local, 1000); };
    return;
  }
  local();
  setInterval(local, 1000);
})();
`
