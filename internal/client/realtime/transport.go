// Package realtime реализует постоянный двунаправленный канал обновлений
// поверх переподключающегося WebSocket соединения. Канал рассылает входящие
// обновления подписчикам по типу сущности и публикует локальные мутации
// остальным клиентам. Эхо собственных публикаций подавляется по client id.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sethvargo/go-retry"

	"github.com/iudanet/chatsync/internal/models"
	"github.com/iudanet/chatsync/pkg/api"
)

// Значения по умолчанию для переподключения
const (
	defaultMaxReconnectAttempts = 5
	defaultReconnectDelay       = time.Second
)

// Config параметры транспорта
type Config struct {
	// URL адрес WebSocket эндпоинта (ws:// или wss://)
	URL string

	// ClientID идентификатор клиента; генерируется, если пуст
	ClientID string

	// MaxReconnectAttempts предел попыток переподключения
	MaxReconnectAttempts int

	// ReconnectDelay базовая задержка экспоненциального backoff
	ReconnectDelay time.Duration
}

// Transport постоянный канал обновлений c автоматическим переподключением.
//
// Архитектура: одна reader-горутина читает соединение и раздает входящие
// конверты подписчикам. При обрыве соединения она же выполняет ограниченную
// серию попыток переподключения; после исчерпания попыток горутина завершается
// и транспорт остается в отключенном состоянии (приложение продолжает работать
// только через офлайн-очередь).
type Transport struct {
	logger *slog.Logger
	conn   *websocket.Conn

	ctx    context.Context
	cancel context.CancelFunc

	subscribers map[string]map[int]func(models.Entity)

	url      string
	clientID string

	maxReconnectAttempts int
	reconnectDelay       time.Duration

	nextSubID int
	connected bool
	closed    bool

	mu      sync.RWMutex
	writeMu sync.Mutex
	wg      sync.WaitGroup
}

// Connect устанавливает соединение, отправляет connect-рукопожатие
// и запускает reader-горутину
func Connect(ctx context.Context, cfg Config, logger *slog.Logger) (*Transport, error) {
	if cfg.ClientID == "" {
		cfg.ClientID = uuid.New().String()
	}
	if cfg.MaxReconnectAttempts <= 0 {
		cfg.MaxReconnectAttempts = defaultMaxReconnectAttempts
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = defaultReconnectDelay
	}

	t := &Transport{
		logger:               logger,
		url:                  cfg.URL,
		clientID:             cfg.ClientID,
		maxReconnectAttempts: cfg.MaxReconnectAttempts,
		reconnectDelay:       cfg.ReconnectDelay,
		subscribers:          make(map[string]map[int]func(models.Entity)),
	}
	t.ctx, t.cancel = context.WithCancel(context.WithoutCancel(ctx))

	conn, err := t.dial(ctx)
	if err != nil {
		t.cancel()
		return nil, err
	}

	t.mu.Lock()
	t.conn = conn
	t.connected = true
	t.mu.Unlock()

	t.logger.Info("Realtime channel connected",
		"url", t.url,
		"client_id", t.clientID)

	t.wg.Add(1)
	go t.readLoop()

	return t, nil
}

// ClientID возвращает идентификатор клиента этого транспорта
func (t *Transport) ClientID() string {
	return t.clientID
}

// IsConnected сообщает, открыт ли канал в данный момент
func (t *Transport) IsConnected() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.connected
}

// Subscribe регистрирует обработчик обновлений для типа сущности.
// Поддерживается несколько подписчиков на тип. Возвращает функцию отписки.
func (t *Transport) Subscribe(entityType string, callback func(models.Entity)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.subscribers[entityType] == nil {
		t.subscribers[entityType] = make(map[int]func(models.Entity))
	}

	id := t.nextSubID
	t.nextSubID++
	t.subscribers[entityType][id] = callback

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.subscribers[entityType], id)
	}
}

// Unsubscribe снимает всех подписчиков типа сущности
func (t *Transport) Unsubscribe(entityType string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.subscribers, entityType)
}

// Publish отправляет конверт обновления, помеченный локальным client id.
// Если канал сейчас не подключен, публикация пропускается с записью в лог.
func (t *Transport) Publish(ctx context.Context, entityType string, data models.Entity) error {
	t.mu.RLock()
	conn := t.conn
	connected := t.connected
	t.mu.RUnlock()

	if !connected {
		t.logger.Warn("Realtime channel not connected, skipping publish",
			"entity_type", entityType,
			"entity_id", data.ID())
		return nil
	}

	msg := api.RealtimeMessage{
		Type:       api.MessageTypeUpdate,
		EntityType: entityType,
		Data:       data,
		ClientID:   t.clientID,
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to publish update: %w", err)
	}

	return nil
}

// Disconnect закрывает канал и останавливает reader-горутину.
// Переподключений после этого не выполняется.
func (t *Transport) Disconnect() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.connected = false
	conn := t.conn
	t.mu.Unlock()

	t.cancel()

	var err error
	if conn != nil {
		err = conn.Close()
	}

	t.wg.Wait()

	t.logger.Info("Realtime channel disconnected", "client_id", t.clientID)
	return err
}

// dial открывает соединение и отправляет connect-рукопожатие
func (t *Transport) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, t.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", t.url, err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	handshake := api.RealtimeMessage{
		Type:     api.MessageTypeConnect,
		ClientID: t.clientID,
	}
	if err := conn.WriteJSON(handshake); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to send connect handshake: %w", err)
	}

	return conn, nil
}

// readLoop читает входящие конверты и переподключается при обрывах
func (t *Transport) readLoop() {
	defer t.wg.Done()

	for {
		t.mu.RLock()
		conn := t.conn
		t.mu.RUnlock()

		_, data, err := conn.ReadMessage()
		if err != nil {
			if t.isClosed() {
				return
			}

			t.setConnected(false)
			t.logger.Warn("Realtime connection lost", "error", err)

			if err := t.reconnect(); err != nil {
				// Терминальный отказ: дальнейших попыток не будет,
				// приложение продолжает работать без live-обновлений
				t.logger.Error("Realtime reconnection attempts exhausted, giving up",
					"attempts", t.maxReconnectAttempts,
					"error", err)
				return
			}

			t.logger.Info("Realtime connection reestablished")
			continue
		}

		t.dispatch(data)
	}
}

// reconnect выполняет ограниченную серию попыток с экспоненциальным backoff
func (t *Transport) reconnect() error {
	backoff := retry.WithMaxRetries(
		uint64(t.maxReconnectAttempts-1),
		retry.NewExponential(t.reconnectDelay),
	)

	return retry.Do(t.ctx, backoff, func(ctx context.Context) error {
		conn, err := t.dial(ctx)
		if err != nil {
			t.logger.Warn("Reconnect attempt failed", "error", err)
			return retry.RetryableError(err)
		}

		t.mu.Lock()
		t.conn = conn
		t.connected = true
		t.mu.Unlock()

		return nil
	})
}

// dispatch раздает входящий конверт подписчикам соответствующего типа
func (t *Transport) dispatch(data []byte) {
	var msg api.RealtimeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.logger.Warn("Failed to decode realtime message", "error", err)
		return
	}

	if msg.Type != api.MessageTypeUpdate {
		return
	}

	// Подавление эха: собственные публикации не раздаются,
	// иначе клиент применил бы свой же broadcast как чужое изменение
	if msg.ClientID == t.clientID {
		t.logger.Debug("Ignoring echo of own update",
			"entity_type", msg.EntityType)
		return
	}

	t.mu.RLock()
	callbacks := make([]func(models.Entity), 0, len(t.subscribers[msg.EntityType]))
	for _, cb := range t.subscribers[msg.EntityType] {
		callbacks = append(callbacks, cb)
	}
	t.mu.RUnlock()

	// Вызываем вне мьютекса: подписчик может отписаться из обработчика
	for _, cb := range callbacks {
		cb(models.Entity(msg.Data))
	}
}

func (t *Transport) isClosed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.closed
}

func (t *Transport) setConnected(connected bool) {
	t.mu.Lock()
	t.connected = connected
	t.mu.Unlock()
}
