package storage

import (
	"context"

	"github.com/iudanet/chatsync/internal/models"
)

//go:generate moq -out queuestorage_mock.go . QueueStorage

// QueueStorage defines the persistence provider for the offline queue.
// Реализация обязана сохранять порядок операций в точности.
type QueueStorage interface {
	// SaveQueue persists the full queue, replacing prior contents
	SaveQueue(ctx context.Context, ops []models.SyncOperation) error

	// LoadQueue returns the persisted queue in order.
	// Returns an empty slice when nothing was persisted yet.
	LoadQueue(ctx context.Context) ([]models.SyncOperation, error)
}
