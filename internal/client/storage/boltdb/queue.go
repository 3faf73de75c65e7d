package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/chatsync/internal/client/storage"
	"github.com/iudanet/chatsync/internal/models"
)

// queueKey ключ, под которым хранится сериализованная очередь целиком
var queueKey = []byte("pending")

// SaveQueue persists the full offline queue, replacing prior contents
func (s *Storage) SaveQueue(ctx context.Context, ops []models.SyncOperation) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	// Сериализуем очередь в JSON
	data, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("failed to marshal queue: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketQueue)
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}

		if err := bucket.Put(queueKey, data); err != nil {
			return fmt.Errorf("failed to save queue: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// LoadQueue returns the persisted offline queue in enqueue order.
// Возвращает пустой срез, если очередь еще не сохранялась.
func (s *Storage) LoadQueue(ctx context.Context) ([]models.SyncOperation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var ops []models.SyncOperation

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		data := bucket.Get(queueKey)
		if data == nil {
			return nil
		}

		if err := json.Unmarshal(data, &ops); err != nil {
			return fmt.Errorf("failed to unmarshal queue: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to load queue: %w", err)
	}

	if ops == nil {
		ops = []models.SyncOperation{}
	}

	return ops, nil
}
