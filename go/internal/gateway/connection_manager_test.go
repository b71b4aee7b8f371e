package gateway

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/openrally/courtside/go/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queueFrame(tournamentID uuid.UUID) events.Frame {
	return events.EventFrame(&events.Event{
		ID:           uuid.New(),
		TournamentID: tournamentID,
		Type:         events.EventTypeQueueUpdated,
		Action:       events.ActionReordered,
		Sequence:     1,
	})
}

func TestSendFrameAfterUnregister(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	conn := &Connection{
		ID:           uuid.New().String(),
		TournamentID: uuid.New(),
		Send:         make(chan []byte, 1),
		Manager:      cm,
	}
	cm.registerConnection(conn)
	cm.unregisterConnection(conn)

	// The Send channel is closed at this point; queueing must fail
	// cleanly instead of panicking.
	err := conn.SendFrame(queueFrame(conn.TournamentID))
	require.Error(t, err)

	// A second unregister is a no-op.
	cm.unregisterConnection(conn)
}

func TestBroadcastSurvivesDisconnectingClients(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	tournamentID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := cm.UpgradeConnection(w, r, tournamentID)
		assert.NoError(t, err)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	clients := make([]*websocket.Conn, 8)
	for i := range clients {
		conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)
		resp.Body.Close()
		clients[i] = conn
	}

	frame := queueFrame(tournamentID)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			cm.handleBroadcast(BroadcastMessage{TournamentID: tournamentID, Frame: frame})
		}
	}()
	for _, conn := range clients {
		conn.Close()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		stats := cm.GetConnectionStats()
		return stats["total_connections"].(int) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
