package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatsync/internal/client/api"
	"github.com/iudanet/chatsync/internal/client/iocli"
	"github.com/iudanet/chatsync/internal/client/queue"
	"github.com/iudanet/chatsync/internal/client/storage"
	"github.com/iudanet/chatsync/internal/client/sync"
	"github.com/iudanet/chatsync/internal/models"
)

// newTestIO собирает IO mock, который пишет весь вывод в буфер
func newTestIO() (*iocli.IOMock, *strings.Builder) {
	var out strings.Builder
	mock := &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			fmt.Fprintln(&out, a...)
		},
		PrintfFunc: func(format string, a ...any) {
			fmt.Fprintf(&out, format, a...)
		},
		WriteFunc: func(p []byte) (int, error) {
			return out.Write(p)
		},
	}
	return mock, &out
}

// newTestCli собирает CLI поверх движка синхронизации с in-memory очередью
func newTestCli(t *testing.T, client *sync.ClientAPIMock) (*Cli, *strings.Builder) {
	t.Helper()

	var persisted []models.SyncOperation
	store := &storage.QueueStorageMock{
		SaveQueueFunc: func(ctx context.Context, ops []models.SyncOperation) error {
			persisted = make([]models.SyncOperation, len(ops))
			copy(persisted, ops)
			return nil
		},
		LoadQueueFunc: func(ctx context.Context) ([]models.SyncOperation, error) {
			return persisted, nil
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	q, err := queue.New(context.Background(), store, logger)
	require.NoError(t, err)

	service := sync.NewService(client, q, sync.Config{}, logger)

	ioMock, out := newTestIO()
	return New(service, ioMock), out
}

// echoClient сервер, на котором еще нет сущностей: Get отвечает 404,
// Create возвращает присланную версию
func echoClient() *sync.ClientAPIMock {
	return &sync.ClientAPIMock{
		GetEntityFunc: func(ctx context.Context, entityType, id string) (models.Entity, error) {
			return nil, api.ErrNotFound
		},
		CreateEntityFunc: func(ctx context.Context, entityType string, entity models.Entity) (models.Entity, error) {
			return entity, nil
		},
	}
}
