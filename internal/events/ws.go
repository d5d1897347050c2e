package events

import (
	log "log/slog"
	"net/http"

	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Serve exposes the hub as a websocket feed on addr at /ws.
// Each connected client gets its own subscription; the feed is
// one-way, client messages are discarded.
func Serve(addr string, hub *Hub) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("Failed to upgrade ws client", "err", err)
			return
		}
		go stream(conn, hub)
	})

	log.Info("Event feed listening", "addr", addr)
	return http.ListenAndServe(addr, mux)
}

func stream(conn *ws.Conn, hub *Hub) {
	sub := hub.Subscribe()
	defer func() {
		hub.Unsubscribe(sub)
		conn.Close()
	}()

	// drain client frames so pings and close frames are processed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for e := range sub {
		if err := conn.WriteJSON(e); err != nil {
			if !ws.IsCloseError(err, ws.CloseNormalClosure, ws.CloseGoingAway) {
				log.Debug("Event feed client gone", "err", err)
			}
			return
		}
	}
}
