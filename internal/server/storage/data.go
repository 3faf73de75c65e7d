package storage

import (
	"context"

	"github.com/iudanet/chatsync/internal/models"
)

//go:generate moq -out entitystorage_mock.go . EntityStorage

// EntityStorage defines interface for entity document persistence.
// Documents are keyed by (entityType, id); the full JSON body is stored.
type EntityStorage interface {
	// CreateEntity stores a new entity document
	// Returns ErrEntityAlreadyExists if the id is already taken for the type
	CreateEntity(ctx context.Context, entityType string, entity models.Entity) (models.Entity, error)

	// GetEntity retrieves a single entity by type and id
	// Returns ErrEntityNotFound if entity doesn't exist
	GetEntity(ctx context.Context, entityType, id string) (models.Entity, error)

	// ListEntities retrieves all entities of a type ordered by updatedAt
	// Returns empty slice if no entities found
	ListEntities(ctx context.Context, entityType string) ([]models.Entity, error)

	// UpdateEntity replaces an existing entity document
	// Returns ErrEntityNotFound if entity doesn't exist
	UpdateEntity(ctx context.Context, entityType, id string, entity models.Entity) (models.Entity, error)

	// DeleteEntity removes an entity document
	// Returns ErrEntityNotFound if entity doesn't exist
	DeleteEntity(ctx context.Context, entityType, id string) error
}
