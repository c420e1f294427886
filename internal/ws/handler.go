package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cartada/cartada-backend/internal/hub"
)

// Handler upgrades the connection, registers it with the hub under a fresh
// opaque client id and pumps inbound envelopes through the dispatch table
// until the peer goes away.
func Handler(g *Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := uuid.NewString()
		out := make(chan hub.Event, 16)

		g.hub.Inbox() <- hub.Register{ClientID: clientID, Outbox: out}
		defer func() {
			g.HandleDisconnect(clientID)
			g.hub.Inbox() <- hub.Unregister{ClientID: clientID}
		}()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for ev := range out {
				payload, err := json.Marshal(ev)
				if err != nil {
					g.log.Error("marshal outbound event", zap.String("event", ev.Name), zap.Error(err))
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		g.HandleConnect(clientID)

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var env Envelope
			if err := json.Unmarshal(data, &env); err != nil {
				g.fail(clientID, "bad json")
				continue
			}

			g.Dispatch(clientID, env)
		}
	}
}
