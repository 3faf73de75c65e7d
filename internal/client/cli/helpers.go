package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/iudanet/chatsync/internal/models"
	"github.com/iudanet/chatsync/internal/sync/resolve"
)

// parseFields собирает сущность из пар field=value
func parseFields(args []string) (models.Entity, error) {
	entity := models.Entity{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q, expected field=value", arg)
		}
		entity[key] = value
	}
	return entity, nil
}

// ParseStrategies разбирает реестр стратегий вида
// messages=merge,contacts=last-write-wins
func ParseStrategies(spec string) (map[string]resolve.Strategy, error) {
	strategies := make(map[string]resolve.Strategy)
	if spec == "" {
		return strategies, nil
	}

	for _, pair := range strings.Split(spec, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || key == "" || value == "" {
			return nil, fmt.Errorf("invalid strategy %q, expected type=strategy", pair)
		}

		strategy := resolve.Strategy(value)
		switch strategy {
		case "lww":
			strategy = resolve.StrategyLastWriteWins
		case resolve.StrategyLastWriteWins, resolve.StrategyMerge,
			resolve.StrategyClientWins, resolve.StrategyServerWins:
		default:
			return nil, fmt.Errorf(
				"unknown strategy %q for type %q. Use: last-write-wins, merge, client-wins, or server-wins",
				value, key)
		}
		strategies[key] = strategy
	}
	return strategies, nil
}

// printEntity выводит поля сущности в стабильном порядке
func (c *Cli) printEntity(entity models.Entity) {
	c.io.Printf("   ID:      %s\n", entity.ID())
	if !entity.UpdatedAt().IsZero() {
		c.io.Printf("   Updated: %s\n", entity.UpdatedAt().Format(time.RFC3339))
	}

	keys := make([]string, 0, len(entity))
	for key := range entity {
		if key == models.FieldID || key == models.FieldUpdatedAt {
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		c.io.Printf("   %s: %v\n", key, entity[key])
	}
}
