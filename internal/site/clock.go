package site

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/schedview/internal/metrics"
	"github.com/ziadkadry99/schedview/internal/view"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development.
	},
}

// ClockFrame is one websocket clock message.
type ClockFrame struct {
	Conn string `json:"conn"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// handleClock pushes a ClockFrame every ClockInterval until the client
// goes away. The language comes from the lang query parameter.
func (l *Live) handleClock(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = l.lang
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("clock: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	metrics.ClockClientConnected()
	defer metrics.ClockClientDisconnected()

	// The request context does not end when a hijacked client leaves; the
	// read loop below does.
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("clock %s: read error: %v", id, err)
				}
				return
			}
		}
	}()

	clock := &view.Clock{
		Interval: l.ClockInterval,
		Now:      l.now,
		Tick: func(now time.Time) {
			cv := l.renderer.Clock(now, lang)
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(ClockFrame{Conn: id, Date: cv.Date, Time: cv.Time}); err != nil {
				cancel()
			}
		},
	}
	stop := clock.Start(ctx)
	<-ctx.Done()
	// No frame may be written once the connection is closed.
	stop()
}
