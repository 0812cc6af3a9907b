package http

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mind-engage/snapstudy/internal/study"
	"github.com/mind-engage/snapstudy/internal/ws"
)

// MessageSession is the websocket message type carrying a study.View.
const MessageSession = "session"

// HubNotifier pushes every session change to the session's websocket watchers.
func HubNotifier(hub *ws.Hub) study.Notifier {
	return study.NotifierFunc(func(v study.View) {
		hub.Send(v.SessionID, ws.Message{Type: MessageSession, Data: v})
	})
}

// GET /ws/sessions/{sessionID}?token=...
// The first message is the current view; updates follow in order.
func SessionSocketHandler(svc *study.Service, hub *ws.Hub, checkOrigin func(*http.Request) bool) http.HandlerFunc {
	upgrader := websocket.Upgrader{CheckOrigin: checkOrigin}
	return func(w http.ResponseWriter, r *http.Request) {
		id := sessionID(r)
		if _, err := svc.View(id); err != nil {
			writeError(w, err)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("ws: upgrade error: %v", err)
			return
		}
		err = hub.Join(id, conn, func() (ws.Message, error) {
			v, err := svc.View(id)
			return ws.Message{Type: MessageSession, Data: v}, err
		})
		if err != nil {
			conn.Close()
			return
		}
		defer hub.Remove(id, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
