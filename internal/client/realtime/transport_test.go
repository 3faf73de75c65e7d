package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatsync/internal/models"
)

// testHub минимальный сервер рассылки: каждый update-конверт
// пересылается всем соединениям, кроме отправителя
type testHub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]bool
	upgrader websocket.Upgrader
}

func newTestHub() *testHub {
	return &testHub{conns: make(map[*websocket.Conn]bool)}
}

func (h *testHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		h.broadcast(conn, data)
	}
}

func (h *testHub) broadcast(origin *websocket.Conn, data []byte) {
	if !strings.Contains(string(data), `"update"`) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.conns {
		if c == origin {
			continue
		}
		_ = c.WriteMessage(websocket.TextMessage, data)
	}
}

// recordingHandler накапливает записи лога для проверок
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) count(level slog.Level, substr string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for _, r := range h.records {
		if r.Level == level && strings.Contains(r.Message, substr) {
			n++
		}
	}
	return n
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func connectTransport(t *testing.T, url, clientID string) *Transport {
	t.Helper()

	tr, err := Connect(context.Background(), Config{
		URL:                  url,
		ClientID:             clientID,
		MaxReconnectAttempts: 1,
		ReconnectDelay:       5 * time.Millisecond,
	}, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Disconnect() })

	return tr
}

func TestConnect_GeneratesClientID(t *testing.T) {
	srv := httptest.NewServer(newTestHub())
	defer srv.Close()

	tr := connectTransport(t, wsURL(srv), "")

	assert.NotEmpty(t, tr.ClientID())
	assert.True(t, tr.IsConnected())
}

func TestConnect_DialError(t *testing.T) {
	_, err := Connect(context.Background(), Config{
		URL: "ws://127.0.0.1:1/ws",
	}, discardLogger())
	require.Error(t, err)
}

func TestPublish_DeliveredToOtherClients(t *testing.T) {
	srv := httptest.NewServer(newTestHub())
	defer srv.Close()

	sender := connectTransport(t, wsURL(srv), "client-a")
	receiver := connectTransport(t, wsURL(srv), "client-b")

	received := make(chan models.Entity, 1)
	receiver.Subscribe("messages", func(e models.Entity) {
		received <- e
	})

	entity := models.Entity{"id": "msg-1", "text": "hello"}
	require.NoError(t, sender.Publish(context.Background(), "messages", entity))

	select {
	case got := <-received:
		assert.Equal(t, "msg-1", got.ID())
		assert.Equal(t, "hello", got["text"])
	case <-time.After(2 * time.Second):
		t.Fatal("update was not delivered to the other client")
	}
}

func TestPublish_EchoSuppressed(t *testing.T) {
	srv := httptest.NewServer(newTestHub())
	defer srv.Close()

	sender := connectTransport(t, wsURL(srv), "client-a")
	receiver := connectTransport(t, wsURL(srv), "client-b")

	senderGot := make(chan models.Entity, 1)
	receiverGot := make(chan models.Entity, 1)
	sender.Subscribe("messages", func(e models.Entity) { senderGot <- e })
	receiver.Subscribe("messages", func(e models.Entity) { receiverGot <- e })

	entity := models.Entity{"id": "msg-1", "text": "hello"}
	require.NoError(t, sender.Publish(context.Background(), "messages", entity))

	// Чужой клиент обновление получает
	select {
	case <-receiverGot:
	case <-time.After(2 * time.Second):
		t.Fatal("update was not delivered to the other client")
	}

	// Отправитель собственное эхо не получает
	select {
	case <-senderGot:
		t.Fatal("sender received echo of its own update")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSubscribe_OnlyMatchingEntityType(t *testing.T) {
	srv := httptest.NewServer(newTestHub())
	defer srv.Close()

	sender := connectTransport(t, wsURL(srv), "client-a")
	receiver := connectTransport(t, wsURL(srv), "client-b")

	contacts := make(chan models.Entity, 1)
	receiver.Subscribe("contacts", func(e models.Entity) { contacts <- e })

	require.NoError(t, sender.Publish(context.Background(), "messages",
		models.Entity{"id": "msg-1"}))

	select {
	case <-contacts:
		t.Fatal("contacts subscriber received a messages update")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSubscribe_UnsubscribeFunc(t *testing.T) {
	srv := httptest.NewServer(newTestHub())
	defer srv.Close()

	sender := connectTransport(t, wsURL(srv), "client-a")
	receiver := connectTransport(t, wsURL(srv), "client-b")

	got := make(chan models.Entity, 2)
	unsubscribe := receiver.Subscribe("messages", func(e models.Entity) { got <- e })

	require.NoError(t, sender.Publish(context.Background(), "messages",
		models.Entity{"id": "msg-1"}))

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("update was not delivered before unsubscribe")
	}

	unsubscribe()

	require.NoError(t, sender.Publish(context.Background(), "messages",
		models.Entity{"id": "msg-2"}))

	select {
	case <-got:
		t.Fatal("update delivered after unsubscribe")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestPublish_SkippedWhenDisconnected(t *testing.T) {
	srv := httptest.NewServer(newTestHub())

	handler := &recordingHandler{}
	tr, err := Connect(context.Background(), Config{
		URL:                  wsURL(srv),
		ClientID:             "client-a",
		MaxReconnectAttempts: 1,
		ReconnectDelay:       5 * time.Millisecond,
	}, slog.New(handler))
	require.NoError(t, err)
	defer func() { _ = tr.Disconnect() }()

	// Сервер уходит, переподключиться некуда
	srv.Close()

	require.Eventually(t, func() bool {
		return !tr.IsConnected()
	}, 2*time.Second, 10*time.Millisecond)

	err = tr.Publish(context.Background(), "messages", models.Entity{"id": "msg-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, handler.count(slog.LevelWarn, "skipping publish"))
}

func TestReconnect_RestoresDelivery(t *testing.T) {
	hub := newTestHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	receiver, err := Connect(context.Background(), Config{
		URL:                  wsURL(srv),
		ClientID:             "client-b",
		MaxReconnectAttempts: 5,
		ReconnectDelay:       5 * time.Millisecond,
	}, discardLogger())
	require.NoError(t, err)
	defer func() { _ = receiver.Disconnect() }()

	got := make(chan models.Entity, 1)
	receiver.Subscribe("messages", func(e models.Entity) { got <- e })

	// Сервер рвет все текущие соединения
	hub.mu.Lock()
	for c := range hub.conns {
		_ = c.Close()
	}
	hub.mu.Unlock()

	require.Eventually(t, func() bool {
		return receiver.IsConnected()
	}, 2*time.Second, 10*time.Millisecond)

	sender := connectTransport(t, wsURL(srv), "client-a")
	require.NoError(t, sender.Publish(context.Background(), "messages",
		models.Entity{"id": "msg-1"}))

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("update was not delivered after reconnect")
	}
}

func TestReconnect_ExhaustedLogsTerminalFailureOnce(t *testing.T) {
	srv := httptest.NewServer(newTestHub())

	handler := &recordingHandler{}
	tr, err := Connect(context.Background(), Config{
		URL:                  wsURL(srv),
		ClientID:             "client-a",
		MaxReconnectAttempts: 2,
		ReconnectDelay:       5 * time.Millisecond,
	}, slog.New(handler))
	require.NoError(t, err)
	defer func() { _ = tr.Disconnect() }()

	// Сервер недоступен окончательно
	srv.Close()

	require.Eventually(t, func() bool {
		return handler.count(slog.LevelError, "exhausted") == 1
	}, 5*time.Second, 10*time.Millisecond)

	// Ровно две попытки, один терминальный отказ, новых попыток нет
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 2, handler.count(slog.LevelWarn, "Reconnect attempt failed"))
	assert.Equal(t, 1, handler.count(slog.LevelError, "exhausted"))
	assert.False(t, tr.IsConnected())
}

func TestDisconnect_Idempotent(t *testing.T) {
	srv := httptest.NewServer(newTestHub())
	defer srv.Close()

	tr, err := Connect(context.Background(), Config{URL: wsURL(srv)}, discardLogger())
	require.NoError(t, err)

	require.NoError(t, tr.Disconnect())
	require.NoError(t, tr.Disconnect())
	assert.False(t, tr.IsConnected())
}
