package cli

import (
	"fmt"
	"slices"

	"github.com/iudanet/chatsync/internal/models"
)

func (c *Cli) runList(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing entity type. Usage: chatsync list <type>")
	}

	entityType := args[0]

	c.io.Printf("=== %s ===\n", entityType)
	c.io.Println()

	entities := c.service.List(entityType)
	if len(entities) == 0 {
		c.io.Println("No entities found.")
		c.io.Println()
		c.io.Printf("Use 'chatsync put %s field=value' to add the first one.\n", entityType)
		return nil
	}

	// Свежие изменения внизу, как в ленте чата
	slices.SortFunc(entities, func(a, b models.Entity) int {
		return a.UpdatedAt().Compare(b.UpdatedAt())
	})

	c.io.Printf("Found %d entity(ies):\n", len(entities))
	c.io.Println()

	for i, entity := range entities {
		c.io.Printf("%d. %s\n", i+1, entity.ID())
		c.printEntity(entity)
		c.io.Println()
	}

	return nil
}
