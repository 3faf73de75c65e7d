package cli

import (
	"fmt"
)

func (c *Cli) runGet(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing arguments. Usage: chatsync get <type> <id>")
	}

	entityType, id := args[0], args[1]

	entity, ok := c.service.Get(entityType, id)
	if !ok {
		return fmt.Errorf("entity %s/%s not found locally. Run 'chatsync sync' to pull server data", entityType, id)
	}

	c.io.Printf("=== %s/%s ===\n", entityType, id)
	c.io.Println()
	c.printEntity(entity)

	return nil
}
