package restserver

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/chrissnell/astrotime/internal/log"
	"github.com/chrissnell/astrotime/pkg/responseformat"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamSnapshots upgrades to a websocket and pushes a live snapshot every
// stream interval until the client goes away or the server shuts down.
// lat, lng and tz apply as on /panchang; time is ignored. format=msgpack
// switches to binary MessagePack frames.
func (h *Handlers) StreamSnapshots(w http.ResponseWriter, req *http.Request) {
	p, err := h.parseParams(req)
	if err != nil {
		h.badRequest(w, req, err)
		return
	}
	zone := p.time.Location()
	binary := responseformat.WantsMsgPack(req)

	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		// Upgrade has already replied to the client
		return
	}
	defer conn.Close()

	c := h.controller
	c.metrics.streamClients.Inc()
	defer c.metrics.streamClients.Dec()
	log.Debugw("stream client connected", "remote_addr", req.RemoteAddr)

	// The read loop only exists to notice close frames and dead peers.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Debugw("stream read error", "remote_addr", req.RemoteAddr, "error", err)
				}
				return
			}
		}
	}()

	send := func() error {
		s := c.snapshot(c.now().In(zone), p.location, true)
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if binary {
			b, err := responseformat.MarshalMsgPack(s)
			if err != nil {
				return err
			}
			return conn.WriteMessage(websocket.BinaryMessage, b)
		}
		return conn.WriteJSON(s)
	}

	if err := send(); err != nil {
		return
	}

	ticker := time.NewTicker(c.restConfig.StreamInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := send(); err != nil {
				log.Debugw("stream write failed", "remote_addr", req.RemoteAddr, "error", err)
				return
			}
		case <-closed:
			return
		case <-c.ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		}
	}
}
