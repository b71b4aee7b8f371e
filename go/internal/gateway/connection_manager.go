package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/openrally/courtside/go/internal/events"
	"github.com/rs/zerolog/log"
)

// ConnectionManager manages WebSocket connections for tournament frames
type ConnectionManager struct {
	// Connection pools organized by tournament ID
	tournamentConnections map[uuid.UUID]map[*Connection]bool
	mu                    sync.RWMutex

	// Upgrader for WebSocket connections
	upgrader websocket.Upgrader

	// Connection configuration
	config ConnectionConfig

	// Frame broadcasting
	broadcastCh chan BroadcastMessage
}

// Connection represents a WebSocket connection to a client
type Connection struct {
	ID           string
	TournamentID uuid.UUID
	Conn         *websocket.Conn
	Send         chan []byte
	Manager      *ConnectionManager

	// sendMu serializes queueing against the close of Send, so a
	// broadcast racing a disconnect can never send on a closed channel.
	sendMu sync.Mutex
	closed bool

	// Connection metadata
	ConnectedAt time.Time
	LastPing    time.Time
}

// ConnectionConfig holds configuration for WebSocket connections
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

// BroadcastMessage represents a frame to broadcast to a tournament's connections
type BroadcastMessage struct {
	TournamentID uuid.UUID
	Frame        events.Frame
}

// DefaultConnectionConfig returns default WebSocket configuration
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			// Allow all origins in development - restrict in production
			return true
		},
	}
}

// NewConnectionManager creates a new WebSocket connection manager
func NewConnectionManager(config ConnectionConfig) *ConnectionManager {
	return &ConnectionManager{
		tournamentConnections: make(map[uuid.UUID]map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		broadcastCh: make(chan BroadcastMessage, 1000),
	}
}

// Start begins processing broadcast messages
func (cm *ConnectionManager) Start(ctx context.Context) {
	log.Info().Msg("connection manager started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("connection manager shutting down")
			return
		case message := <-cm.broadcastCh:
			cm.handleBroadcast(message)
		}
	}
}

// UpgradeConnection upgrades an HTTP connection to WebSocket. The returned
// connection is registered and pumping; frames queued on Send are
// delivered in order.
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, tournamentID uuid.UUID) (*Connection, error) {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
		return nil, fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		ID:           uuid.New().String(),
		TournamentID: tournamentID,
		Conn:         conn,
		Send:         make(chan []byte, 256),
		Manager:      cm,
		ConnectedAt:  time.Now(),
		LastPing:     time.Now(),
	}

	// Register before the pumps start so no broadcast slips between
	// upgrade and registration.
	cm.registerConnection(connection)

	go connection.writePump()
	go connection.readPump()

	log.Info().
		Str("connection_id", connection.ID).
		Str("tournament_id", tournamentID.String()).
		Msg("WebSocket connection established")

	return connection, nil
}

// SendFrame queues a frame on a single connection.
func (c *Connection) SendFrame(frame events.Frame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("failed to marshal frame: %w", err)
	}
	if !c.trySend(data) {
		return fmt.Errorf("connection %s closed or send buffer full", c.ID)
	}
	return nil
}

// trySend queues data without blocking. It reports false when the
// connection is closed or its buffer is full.
func (c *Connection) trySend(data []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// closeSend closes the Send channel exactly once. writePump sees the
// close and writes the WebSocket close message.
func (c *Connection) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// registerConnection adds a connection to the manager
func (cm *ConnectionManager) registerConnection(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.tournamentConnections[conn.TournamentID] == nil {
		cm.tournamentConnections[conn.TournamentID] = make(map[*Connection]bool)
	}
	cm.tournamentConnections[conn.TournamentID][conn] = true

	log.Debug().
		Str("connection_id", conn.ID).
		Str("tournament_id", conn.TournamentID.String()).
		Int("total_connections", len(cm.tournamentConnections[conn.TournamentID])).
		Msg("connection registered")
}

// unregisterConnection removes a connection from the manager
func (cm *ConnectionManager) unregisterConnection(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if connections, exists := cm.tournamentConnections[conn.TournamentID]; exists {
		if _, exists := connections[conn]; exists {
			delete(connections, conn)
			conn.closeSend()

			if len(connections) == 0 {
				delete(cm.tournamentConnections, conn.TournamentID)
			}

			log.Info().
				Str("connection_id", conn.ID).
				Str("tournament_id", conn.TournamentID.String()).
				Msg("connection unregistered")
		}
	}
}

// BroadcastToTournament sends a frame to all connections watching one
// tournament. Frames are queued on a buffered channel; a full channel
// drops the frame, and subscribers recover through their gap handling.
func (cm *ConnectionManager) BroadcastToTournament(tournamentID uuid.UUID, frame events.Frame) {
	select {
	case cm.broadcastCh <- BroadcastMessage{TournamentID: tournamentID, Frame: frame}:
	default:
		log.Warn().Str("tournament_id", tournamentID.String()).Msg("broadcast channel full, dropping frame")
	}
}

// handleBroadcast processes a broadcast message
func (cm *ConnectionManager) handleBroadcast(message BroadcastMessage) {
	cm.mu.RLock()
	connections, exists := cm.tournamentConnections[message.TournamentID]
	if !exists {
		cm.mu.RUnlock()
		return
	}

	targetConnections := make([]*Connection, 0, len(connections))
	for conn := range connections {
		targetConnections = append(targetConnections, conn)
	}
	cm.mu.RUnlock()

	// Marshal the frame once
	frameData, err := json.Marshal(message.Frame)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal frame for broadcast")
		return
	}

	for _, conn := range targetConnections {
		if !conn.trySend(frameData) {
			// Connection is slow/dead, close it
			log.Warn().
				Str("connection_id", conn.ID).
				Msg("connection closed or send buffer full, dropping connection")
			cm.unregisterConnection(conn)
			conn.Conn.Close()
		}
	}

	log.Debug().
		Str("kind", string(message.Frame.Kind)).
		Str("tournament_id", message.TournamentID.String()).
		Int("connections", len(targetConnections)).
		Msg("frame broadcasted")
}

// GetConnectionStats returns statistics about active connections
func (cm *ConnectionManager) GetConnectionStats() map[string]interface{} {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	totalConnections := 0
	tournamentCounts := make(map[string]int)

	for tournamentID, connections := range cm.tournamentConnections {
		count := len(connections)
		totalConnections += count
		tournamentCounts[tournamentID.String()] = count
	}

	return map[string]interface{}{
		"total_connections":      totalConnections,
		"active_tournaments":     len(cm.tournamentConnections),
		"tournament_connections": tournamentCounts,
	}
}

// writePump handles sending messages to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.Manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Manager.unregisterConnection(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if !ok {
				// Channel was closed
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to write message to WebSocket")
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to send ping")
				return
			}
			c.LastPing = time.Now()
		}
	}
}

// readPump handles reading messages from the WebSocket connection. Clients
// never mutate over the socket; mutations go through the REST surface.
func (c *Connection) readPump() {
	defer func() {
		c.Manager.unregisterConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Manager.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
		c.LastPing = time.Now()
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("unexpected WebSocket close error")
			}
			break
		}

		log.Debug().
			Str("connection_id", c.ID).
			RawJSON("message", message).
			Msg("received client message")
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	}
}
