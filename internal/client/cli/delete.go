package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/chatsync/internal/client/sync"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing arguments. Usage: chatsync delete <type> <id>")
	}

	entityType, id := args[0], args[1]

	if err := c.service.DeleteEntity(ctx, entityType, id); err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}

	c.io.Printf("Deleted %s/%s\n", entityType, id)

	if c.service.State() == sync.StateOffline {
		c.io.Println()
		c.io.Printf("⚠️  Pending sync: %d operation(s). Run 'chatsync sync' when back online.\n",
			c.service.PendingCount())
	}

	return nil
}
