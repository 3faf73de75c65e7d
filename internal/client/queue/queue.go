// Package queue реализует устойчивую офлайн-очередь отложенных мутаций.
// Очередь строго FIFO: порядок добавления сохраняется в точности, без
// переупорядочивания и дедупликации. Содержимое переживает перезапуск
// процесса за счет инжектированного провайдера персистентности.
package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/chatsync/internal/client/storage"
	"github.com/iudanet/chatsync/internal/models"
)

// Queue durable FIFO очередь операций синхронизации
type Queue struct {
	store  storage.QueueStorage
	logger *slog.Logger
	ops    []models.SyncOperation
	mu     sync.Mutex
}

// New создает очередь и загружает сохраненное содержимое из провайдера
func New(ctx context.Context, store storage.QueueStorage, logger *slog.Logger) (*Queue, error) {
	ops, err := store.LoadQueue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load queue: %w", err)
	}

	if len(ops) > 0 {
		logger.Info("Restored offline queue", "pending", len(ops))
	}

	return &Queue{
		store:  store,
		logger: logger,
		ops:    ops,
	}, nil
}

// Enqueue добавляет операцию в хвост очереди и немедленно сохраняет ее
func (q *Queue) Enqueue(ctx context.Context, op models.SyncOperation) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.ops = append(q.ops, op.Clone())

	if err := q.flush(ctx); err != nil {
		// Откатываем добавление, чтобы память и диск не разошлись
		q.ops = q.ops[:len(q.ops)-1]
		return fmt.Errorf("failed to persist queue: %w", err)
	}

	q.logger.Debug("Operation enqueued",
		"type", op.Type,
		"entity_type", op.EntityType,
		"entity_id", op.Entity.ID(),
		"pending", len(q.ops))

	return nil
}

// Dequeue снимает и возвращает головную операцию, немедленно сохраняя
// обновленную очередь. Возвращает nil при пустой очереди.
func (q *Queue) Dequeue(ctx context.Context) (*models.SyncOperation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.ops) == 0 {
		return nil, nil
	}

	head := q.ops[0]
	q.ops = q.ops[1:]

	if err := q.flush(ctx); err != nil {
		// Возвращаем голову на место
		q.ops = append([]models.SyncOperation{head}, q.ops...)
		return nil, fmt.Errorf("failed to persist queue: %w", err)
	}

	return &head, nil
}

// Peek возвращает копию головной операции, не снимая ее.
// Возвращает nil при пустой очереди.
func (q *Queue) Peek() *models.SyncOperation {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.ops) == 0 {
		return nil
	}

	head := q.ops[0].Clone()
	return &head
}

// RecordFailure увеличивает счетчик неудачных попыток головной операции,
// сохраняет очередь и возвращает новое значение счетчика.
// Возвращает 0 при пустой очереди.
func (q *Queue) RecordFailure(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.ops) == 0 {
		return 0, nil
	}

	q.ops[0].Attempts++

	if err := q.flush(ctx); err != nil {
		return q.ops[0].Attempts, fmt.Errorf("failed to persist queue: %w", err)
	}

	return q.ops[0].Attempts, nil
}

// GetAll возвращает снимок очереди в порядке добавления
func (q *Queue) GetAll() []models.SyncOperation {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]models.SyncOperation, len(q.ops))
	for i, op := range q.ops {
		out[i] = op.Clone()
	}
	return out
}

// Clear удаляет все операции и сохраняет пустую очередь
func (q *Queue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.ops = q.ops[:0]

	if err := q.flush(ctx); err != nil {
		return fmt.Errorf("failed to persist queue: %w", err)
	}

	return nil
}

// Size возвращает количество отложенных операций
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ops)
}

// flush сохраняет текущее содержимое; вызывается под мьютексом
func (q *Queue) flush(ctx context.Context) error {
	return q.store.SaveQueue(ctx, q.ops)
}
