package server

import (
	"encoding/json"
	"net/http"

	"sales-report/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// directMessage is a reply meant for a single client.
type directMessage struct {
	client  *Client
	message *models.MPushMessage
}

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the hub loop. It is the only writer of s.clients and the
// only goroutine that sends on or closes a client's channel.
func (s *ReportServer) handleWebsockets() {
	for {
		select {
		case <-s.done:
			s.clientsMu.Lock()
			for client := range s.clients {
				delete(s.clients, client)
				close(client.frames)
			}
			s.clientsMu.Unlock()
			return

		case client := <-s.register:
			s.clientsMu.Lock()
			s.clients[client] = struct{}{}
			s.clientsMu.Unlock()

			// Current snapshot on connect
			if view := s.Provider.Snapshot(); view != nil {
				s.deliver(client, snapshotMessage("INITIAL", view))
			}

		case client := <-s.unregister:
			s.drop(client)

		case reply := <-s.direct:
			s.deliver(reply.client, reply.message)

		case view := <-s.broadcast:
			message := snapshotMessage("UPDATE", view)
			s.clientsMu.RLock()
			targets := make([]*Client, 0, len(s.clients))
			for client := range s.clients {
				targets = append(targets, client)
			}
			s.clientsMu.RUnlock()

			for _, client := range targets {
				s.deliver(client, message)
			}
		}
	}
}

// deliver queues a frame for a registered client. A client whose buffer is
// full is disconnected so the hub never blocks.
func (s *ReportServer) deliver(client *Client, message *models.MPushMessage) {
	s.clientsMu.RLock()
	_, ok := s.clients[client]
	s.clientsMu.RUnlock()
	if !ok {
		return
	}

	select {
	case client.frames <- message:
	default:
		s.Logger.Warning("Dropping slow websocket client")
		s.drop(client)
	}
}

func (s *ReportServer) drop(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if _, ok := s.clients[client]; ok {
		delete(s.clients, client)
		close(client.frames)
	}
}

func snapshotMessage(kind string, view *models.MReportView) *models.MPushMessage {
	return &models.MPushMessage{Type: kind, SnapshotID: view.SnapshotID, View: "report", Data: view}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// Broadcast queues a freshly swapped snapshot for every client. It never
// blocks the refresh: with a full queue the snapshot is skipped, clients get
// the next one.
func (s *ReportServer) Broadcast(view *models.MReportView) {
	if view == nil {
		return
	}
	select {
	case s.broadcast <- view:
	case <-s.done:
	default:
		s.Logger.Warning("Broadcast queue full, skipping snapshot %s", view.SnapshotID)
	}
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *ReportServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := newClient(s, conn)

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return
	}

	client.serve()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

// HandleClientMessage answers {"command": "get", "view": ..., "order": ...}
// with one section of the current snapshot.
func (s *ReportServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MClientCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	if cmd.Command != "get" {
		return
	}

	reply := &models.MPushMessage{Type: "VIEW", View: cmd.View}
	if view := s.Provider.Snapshot(); view == nil {
		reply.Type = "ERROR"
		reply.Error = "no report available yet"
	} else if data, err := viewSection(view, cmd.View, cmd.Order); err != nil {
		reply.Type = "ERROR"
		reply.Error = err.Error()
	} else {
		reply.SnapshotID = view.SnapshotID
		reply.Data = data
	}

	select {
	case s.direct <- directMessage{client: client, message: reply}:
	case <-s.done:
	}
}
