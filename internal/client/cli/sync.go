package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/chatsync/internal/client/sync"
)

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")
	c.io.Println()

	result, err := c.service.Sync(ctx)
	if err != nil {
		if errors.Is(err, sync.ErrOffline) {
			return fmt.Errorf("client is offline. Run 'chatsync sync' again when the server is reachable")
		}
		return fmt.Errorf("sync failed: %w", err)
	}

	c.io.Printf("Replayed: %d queued operation(s)\n", result.Replayed)
	c.io.Printf("Pushed:   %d local entity(ies)\n", result.Pushed)
	c.io.Printf("Pulled:   %d server entity(ies)\n", result.Pulled)
	c.io.Printf("Resolved: %d conflict(s)\n", result.Resolved)

	if result.Dropped > 0 {
		c.io.Println()
		c.io.Printf("⚠️  Dropped %d operation(s) after repeated failures\n", result.Dropped)
	}

	if len(result.Errors) > 0 {
		c.io.Println()
		c.io.Printf("⚠️  %d entity type(s) failed to reconcile:\n", len(result.Errors))
		for _, msg := range result.Errors {
			c.io.Printf("   - %s\n", msg)
		}
	}

	c.io.Println()
	if pending := c.service.PendingCount(); pending > 0 {
		c.io.Printf("⚠️  Pending sync: %d operation(s) still waiting\n", pending)
	} else {
		c.io.Println("✓ All data synchronized with server")
	}

	return nil
}
