package server

import (
	"time"

	"github.com/gorilla/websocket"

	"sales-report/src/models"
)

// Websocket session limits.
const (
	writeWait       = 2 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	maxCommandBytes = 64 * 1024
	frameQueue      = 16
)

// -----------------------------------------------------------------------------
// Client is one websocket session. The hub owns frames: it is the only
// goroutine that queues into it or closes it.
// -----------------------------------------------------------------------------

type Client struct {
	server *ReportServer
	conn   *websocket.Conn
	frames chan *models.MPushMessage
	remote string
}

func newClient(server *ReportServer, conn *websocket.Conn) *Client {
	return &Client{
		server: server,
		conn:   conn,
		frames: make(chan *models.MPushMessage, frameQueue),
		remote: conn.RemoteAddr().String(),
	}
}

// serve runs both halves of the session.
func (c *Client) serve() {
	go c.writeFrames()
	go c.readCommands()
}

// -----------------------------------------------------------------------------

// readCommands forwards client commands until the peer goes away or stops
// answering pings, then hands the session back to the hub.
func (c *Client) readCommands() {
	defer c.leave()

	c.conn.SetReadLimit(maxCommandBytes)
	c.extendReadDeadline()
	c.conn.SetPongHandler(func(string) error {
		c.extendReadDeadline()
		return nil
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.server.Logger.Info("Websocket %s closed: %v", c.remote, err)
			}
			return
		}
		c.server.HandleClientMessage(c, payload)
	}
}

func (c *Client) extendReadDeadline() {
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
}

func (c *Client) leave() {
	select {
	case c.server.unregister <- c:
	case <-c.server.done:
	}
	c.conn.Close()
	c.server.Logger.Debug("Websocket %s disconnected", c.remote)
}

// -----------------------------------------------------------------------------

// writeFrames is the only writer of the connection. A closed frames channel
// means the hub dropped the session.
func (c *Client) writeFrames() {
	keepAlive := time.NewTicker(pingPeriod)
	defer keepAlive.Stop()
	defer c.conn.Close()

	for {
		select {
		case frame, open := <-c.frames:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !open {
				goodbye := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
				_ = c.conn.WriteMessage(websocket.CloseMessage, goodbye)
				return
			}
			if err := c.conn.WriteJSON(frame); err != nil {
				c.server.Logger.Info("Websocket %s write failed: %v", c.remote, err)
				return
			}

		case <-keepAlive.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
