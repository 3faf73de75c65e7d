package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/chatsync/internal/client/sync"
)

func (c *Cli) runPut(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing arguments. Usage: chatsync put <type> field=value [field=value ...]")
	}

	entityType := args[0]
	entity, err := parseFields(args[1:])
	if err != nil {
		return err
	}

	synced, err := c.service.SyncEntity(ctx, entityType, entity)
	if err != nil {
		return fmt.Errorf("failed to sync entity: %w", err)
	}

	c.io.Printf("Saved %s/%s\n", entityType, synced.ID())
	c.printEntity(synced)

	if c.service.State() == sync.StateOffline {
		c.io.Println()
		c.io.Printf("⚠️  Pending sync: %d operation(s). Run 'chatsync sync' when back online.\n",
			c.service.PendingCount())
	}

	return nil
}
