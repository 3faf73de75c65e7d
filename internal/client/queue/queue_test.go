package queue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatsync/internal/client/storage"
	"github.com/iudanet/chatsync/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newMemoryStore возвращает mock провайдера, хранящий очередь в памяти
func newMemoryStore() *storage.QueueStorageMock {
	var persisted []models.SyncOperation
	return &storage.QueueStorageMock{
		SaveQueueFunc: func(ctx context.Context, ops []models.SyncOperation) error {
			persisted = make([]models.SyncOperation, len(ops))
			copy(persisted, ops)
			return nil
		},
		LoadQueueFunc: func(ctx context.Context) ([]models.SyncOperation, error) {
			return persisted, nil
		},
	}
}

func makeOp(id string) models.SyncOperation {
	return models.SyncOperation{
		Type:       models.OpUpdate,
		EntityType: "messages",
		Entity:     models.Entity{"id": id},
		Timestamp:  1,
		ClientID:   "client-test",
	}
}

func TestQueue_FIFO(t *testing.T) {
	ctx := context.Background()
	q, err := New(ctx, newMemoryStore(), testLogger())
	require.NoError(t, err)

	require.NoError(t, q.Enqueue(ctx, makeOp("a")))
	require.NoError(t, q.Enqueue(ctx, makeOp("b")))
	assert.Equal(t, 2, q.Size())

	first, err := q.Dequeue(ctx)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "a", first.Entity.ID())

	second, err := q.Dequeue(ctx)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "b", second.Entity.ID())

	empty, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Nil(t, empty)
	assert.Equal(t, 0, q.Size())
}

func TestQueue_PersistsOnEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	q, err := New(ctx, store, testLogger())
	require.NoError(t, err)

	require.NoError(t, q.Enqueue(ctx, makeOp("a")))
	require.NoError(t, q.Enqueue(ctx, makeOp("b")))
	_, err = q.Dequeue(ctx)
	require.NoError(t, err)
	require.NoError(t, q.Clear(ctx))

	// Каждая мутация вызывает сохранение: 2 enqueue + 1 dequeue + 1 clear
	assert.Len(t, store.SaveQueueCalls(), 4)
}

func TestQueue_ReloadsAtStartup(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()

	q, err := New(ctx, store, testLogger())
	require.NoError(t, err)
	require.NoError(t, q.Enqueue(ctx, makeOp("a")))
	require.NoError(t, q.Enqueue(ctx, makeOp("b")))

	// Вторая очередь поверх того же провайдера видит содержимое первой
	restored, err := New(ctx, store, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, restored.Size())

	head := restored.Peek()
	require.NotNil(t, head)
	assert.Equal(t, "a", head.Entity.ID())
}

func TestQueue_LoadFailure(t *testing.T) {
	broken := &storage.QueueStorageMock{
		LoadQueueFunc: func(ctx context.Context) ([]models.SyncOperation, error) {
			return nil, errors.New("disk corrupted")
		},
	}

	q, err := New(context.Background(), broken, testLogger())
	assert.Error(t, err)
	assert.Nil(t, q)
}

func TestQueue_EnqueueRollsBackOnPersistFailure(t *testing.T) {
	ctx := context.Background()
	failing := &storage.QueueStorageMock{
		LoadQueueFunc: func(ctx context.Context) ([]models.SyncOperation, error) {
			return nil, nil
		},
		SaveQueueFunc: func(ctx context.Context, ops []models.SyncOperation) error {
			return errors.New("disk full")
		},
	}

	q, err := New(ctx, failing, testLogger())
	require.NoError(t, err)

	err = q.Enqueue(ctx, makeOp("a"))
	assert.Error(t, err)
	// Память и диск не должны разойтись
	assert.Equal(t, 0, q.Size())
}

func TestQueue_PeekDoesNotConsume(t *testing.T) {
	ctx := context.Background()
	q, err := New(ctx, newMemoryStore(), testLogger())
	require.NoError(t, err)

	require.NoError(t, q.Enqueue(ctx, makeOp("a")))

	head := q.Peek()
	require.NotNil(t, head)
	assert.Equal(t, "a", head.Entity.ID())
	assert.Equal(t, 1, q.Size())

	// Мутация копии не влияет на очередь
	head.Entity["id"] = "tampered"
	fresh := q.Peek()
	assert.Equal(t, "a", fresh.Entity.ID())
}

func TestQueue_RecordFailure(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	q, err := New(ctx, store, testLogger())
	require.NoError(t, err)

	// Пустая очередь: счетчик 0, без ошибки
	attempts, err := q.RecordFailure(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, attempts)

	require.NoError(t, q.Enqueue(ctx, makeOp("a")))

	attempts, err = q.RecordFailure(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)

	attempts, err = q.RecordFailure(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)

	// Счетчик сохраняется провайдером
	restored, err := New(ctx, store, testLogger())
	require.NoError(t, err)
	head := restored.Peek()
	require.NotNil(t, head)
	assert.Equal(t, 2, head.Attempts)
}

func TestQueue_GetAllSnapshot(t *testing.T) {
	ctx := context.Background()
	q, err := New(ctx, newMemoryStore(), testLogger())
	require.NoError(t, err)

	require.NoError(t, q.Enqueue(ctx, makeOp("a")))
	require.NoError(t, q.Enqueue(ctx, makeOp("b")))

	all := q.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Entity.ID())
	assert.Equal(t, "b", all[1].Entity.ID())

	// Снимок не разрушает очередь
	assert.Equal(t, 2, q.Size())
}
