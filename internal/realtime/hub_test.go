package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wenlock-health-server/internal/models"
)

type fakeSource struct {
	lowStock []models.Medicine
}

func (f *fakeSource) Snapshot(logLimit int) (Snapshot, error) {
	logs := make([]models.ActivityLog, 0, logLimit)
	for i := 0; i < logLimit; i++ {
		logs = append(logs, models.ActivityLog{ID: uint(i + 1), Message: "entry", Type: models.ActivityTokenUpdate})
	}
	return Snapshot{
		Departments: []models.Department{{ID: 1, Name: "Operation Theatre", Code: "OT", IsActive: true}},
		Logs:        logs,
	}, nil
}

func (f *fakeSource) LowStockMedicines() ([]models.Medicine, error) {
	return f.lowStock, nil
}

// envelope mirrors Message with the payload left raw for inspection
type envelope struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

func newTestHub(t *testing.T, source StateSource, cfg Config) (*Hub, *httptest.Server) {
	t.Helper()
	if cfg.HeartbeatInterval == 0 {
		cfg.HeartbeatInterval = time.Hour
	}
	if cfg.SyncInterval == 0 {
		cfg.SyncInterval = time.Hour
	}
	hub := NewHub(source, cfg, zap.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env envelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func TestHub_ConnectSendsStatus(t *testing.T) {
	hub, srv := newTestHub(t, &fakeSource{}, Config{SnapshotLogLimit: 20})
	conn := dial(t, srv)

	env := readEnvelope(t, conn)
	assert.Equal(t, MessageConnectionStatus, env.Type)
	assert.False(t, env.Timestamp.IsZero())

	var status ConnectionStatus
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, StatusConnected, status.Status)
	assert.Equal(t, 1, status.ClientCount)
	assert.Equal(t, 1, hub.ClientCount())
}

func TestHub_PingAndRequestData(t *testing.T) {
	_, srv := newTestHub(t, &fakeSource{}, Config{SnapshotLogLimit: 20})
	conn := dial(t, srv)
	readEnvelope(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))
	env := readEnvelope(t, conn)
	assert.Equal(t, MessagePong, env.Type)

	// Malformed input is ignored and the connection stays usable.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "request_data"}))
	env = readEnvelope(t, conn)
	assert.Equal(t, MessageConnectionStatus, env.Type)

	var snapshot Snapshot
	require.NoError(t, json.Unmarshal(env.Data, &snapshot))
	require.Len(t, snapshot.Departments, 1)
	assert.Equal(t, "OT", snapshot.Departments[0].Code)
	assert.Len(t, snapshot.Logs, 20)
}

func TestHub_BroadcastReachesEverySubscriber(t *testing.T) {
	hub, srv := newTestHub(t, &fakeSource{}, Config{})
	first := dial(t, srv)
	readEnvelope(t, first)
	second := dial(t, srv)
	readEnvelope(t, second)

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	alert := models.EmergencyAlert{ID: 3, Message: "Code Blue", Type: "general", IsActive: true}
	hub.Publish(EmergencyAlertUpdate{Action: AlertActionRaised, Alert: alert})

	for _, conn := range []*websocket.Conn{first, second} {
		env := readEnvelope(t, conn)
		assert.Equal(t, MessageEmergencyAlert, env.Type)

		var update EmergencyAlertUpdate
		require.NoError(t, json.Unmarshal(env.Data, &update))
		assert.Equal(t, AlertActionRaised, update.Action)
		assert.Equal(t, "Code Blue", update.Alert.Message)
	}
}

func TestHub_DisconnectedClientIsRemoved(t *testing.T) {
	hub, srv := newTestHub(t, &fakeSource{}, Config{})
	conn := dial(t, srv)
	readEnvelope(t, conn)
	require.Equal(t, 1, hub.ClientCount())

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	// Broadcasting with no subscribers is a no-op.
	hub.Publish(TokenUpdate{Action: TokenActionReset})
}

func TestHub_HeartbeatDropsSilentClients(t *testing.T) {
	hub, srv := newTestHub(t, &fakeSource{}, Config{})
	conn := dial(t, srv)
	readEnvelope(t, conn)

	// The client stops reading, so the ping is never answered.
	hub.heartbeat()
	assert.Equal(t, 1, hub.ClientCount())

	hub.heartbeat()
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_SyncBroadcastsLowStockAndStatus(t *testing.T) {
	source := &fakeSource{lowStock: []models.Medicine{{ID: 1, Name: "Insulin Injection", CurrentStock: 3, MinimumThreshold: 10, Unit: "vials"}}}
	hub, srv := newTestHub(t, source, Config{})
	conn := dial(t, srv)
	readEnvelope(t, conn)

	hub.sync()

	env := readEnvelope(t, conn)
	assert.Equal(t, MessageInventoryUpdate, env.Type)
	var inventory InventoryUpdate
	require.NoError(t, json.Unmarshal(env.Data, &inventory))
	require.Len(t, inventory.LowStockMedicines, 1)
	assert.Nil(t, inventory.Medicine)

	env = readEnvelope(t, conn)
	assert.Equal(t, MessageConnectionStatus, env.Type)
	var status ConnectionStatus
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, StatusSynced, status.Status)
	assert.Equal(t, 1, status.ClientCount)
	assert.NotNil(t, status.LastSync)
}

func TestHub_SyncSkipsInventoryWhenNothingIsLow(t *testing.T) {
	hub, srv := newTestHub(t, &fakeSource{}, Config{})
	conn := dial(t, srv)
	readEnvelope(t, conn)

	hub.sync()

	env := readEnvelope(t, conn)
	assert.Equal(t, MessageConnectionStatus, env.Type)
}

func TestHub_RunClosesClientsOnShutdown(t *testing.T) {
	hub, srv := newTestHub(t, &fakeSource{}, Config{})
	conn := dial(t, srv)
	readEnvelope(t, conn)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_UpgradeFailures(t *testing.T) {
	_, srv := newTestHub(t, &fakeSource{}, Config{AllowedOrigin: "http://localhost:5173"})

	t.Run("plain http request", func(t *testing.T) {
		resp, err := http.Get(srv.URL)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("foreign origin", func(t *testing.T) {
		url := "ws" + strings.TrimPrefix(srv.URL, "http")
		header := http.Header{"Origin": []string{"http://elsewhere.example"}}
		_, resp, err := websocket.DefaultDialer.Dial(url, header)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestNewMessage_UsesPayloadType(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		payload Payload
		want    MessageType
	}{
		{TokenUpdate{Action: TokenActionAdvanced}, MessageTokenUpdate},
		{InventoryUpdate{}, MessageInventoryUpdate},
		{EmergencyAlertUpdate{}, MessageEmergencyAlert},
		{ActivityLogEntry{}, MessageActivityLog},
		{ConnectionStatus{}, MessageConnectionStatus},
		{Snapshot{}, MessageConnectionStatus},
		{Pong{}, MessagePong},
	}
	for _, tt := range tests {
		msg := NewMessage(tt.payload, at)
		assert.Equal(t, tt.want, msg.Type)
		assert.Equal(t, at, msg.Timestamp)
	}
}

func TestActivityLogEntry_FlattensLog(t *testing.T) {
	entry := ActivityLogEntry{models.ActivityLog{ID: 4, Message: "OT Token 13 now being served", Type: models.ActivityTokenUpdate}}
	data, err := json.Marshal(NewMessage(entry, time.Now()))
	require.NoError(t, err)

	var decoded struct {
		Type string `json:"type"`
		Data struct {
			ID      uint   `json:"id"`
			Message string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "activity_log", decoded.Type)
	assert.Equal(t, uint(4), decoded.Data.ID)
	assert.Equal(t, "OT Token 13 now being served", decoded.Data.Message)
}
