package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/chatsync/internal/client/sync"
)

// watchSyncInterval период фоновой сверки с сервером во время watch
const watchSyncInterval = 30 * time.Second

func (c *Cli) runWatch(ctx context.Context) error {
	if err := c.service.EnableRealTime(ctx); err != nil {
		return fmt.Errorf("failed to start watching: %w", err)
	}
	defer func() {
		if err := c.service.DisableRealTime(); err != nil && !errors.Is(err, sync.ErrRealtimeDisabled) {
			c.io.Printf("Warning: failed to stop realtime channel: %v\n", err)
		}
	}()

	c.io.Println("Watching for live updates. Press Ctrl+C to stop.")

	// Realtime доносит только живые обновления; периодическая сверка
	// подбирает пропущенное за время обрывов канала
	ticker := time.NewTicker(watchSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.io.Println()
			c.io.Println("Stopped watching.")
			return nil
		case <-ticker.C:
			if _, err := c.service.Sync(ctx); err != nil {
				c.io.Printf("Warning: background sync failed: %v\n", err)
			}
		}
	}
}
