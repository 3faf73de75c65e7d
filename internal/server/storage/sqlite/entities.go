package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/chatsync/internal/models"
	"github.com/iudanet/chatsync/internal/server/storage"
)

// CreateEntity stores a new entity document
// Returns ErrEntityAlreadyExists if the id is already taken for the type
func (s *Storage) CreateEntity(ctx context.Context, entityType string, entity models.Entity) (models.Entity, error) {
	// Проверяем, не занят ли идентификатор
	_, err := s.GetEntity(ctx, entityType, entity.ID())
	if err == nil {
		return nil, storage.ErrEntityAlreadyExists
	}
	if !errors.Is(err, storage.ErrEntityNotFound) {
		return nil, fmt.Errorf("failed to check existing entity: %w", err)
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}

	now := time.Now().Unix()
	query := `
		INSERT INTO entities (entity_type, id, data, updated_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		entityType,
		entity.ID(),
		string(data),
		entity.UpdatedAt().UnixMilli(),
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert entity: %w", err)
	}

	return entity, nil
}

// GetEntity retrieves a single entity by type and id
// Returns ErrEntityNotFound if entity doesn't exist
func (s *Storage) GetEntity(ctx context.Context, entityType, id string) (models.Entity, error) {
	query := `
		SELECT data
		FROM entities
		WHERE entity_type = ? AND id = ?
	`

	var data string
	err := s.db.QueryRowContext(ctx, query, entityType, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	return unmarshalEntity(data)
}

// ListEntities retrieves all entities of a type ordered by updatedAt
// Returns empty slice if no entities found
func (s *Storage) ListEntities(ctx context.Context, entityType string) ([]models.Entity, error) {
	query := `
		SELECT data
		FROM entities
		WHERE entity_type = ?
		ORDER BY updated_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	entities := make([]models.Entity, 0)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}

		entity, err := unmarshalEntity(data)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entities, nil
}

// UpdateEntity replaces an existing entity document
// Returns ErrEntityNotFound if entity doesn't exist
func (s *Storage) UpdateEntity(ctx context.Context, entityType, id string, entity models.Entity) (models.Entity, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}

	query := `
		UPDATE entities
		SET data = ?, updated_at = ?
		WHERE entity_type = ? AND id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		string(data),
		entity.UpdatedAt().UnixMilli(),
		entityType,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update entity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, storage.ErrEntityNotFound
	}

	return entity, nil
}

// DeleteEntity removes an entity document
// Returns ErrEntityNotFound if entity doesn't exist
func (s *Storage) DeleteEntity(ctx context.Context, entityType, id string) error {
	query := `
		DELETE FROM entities
		WHERE entity_type = ? AND id = ?
	`

	result, err := s.db.ExecContext(ctx, query, entityType, id)
	if err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrEntityNotFound
	}

	return nil
}

// unmarshalEntity декодирует сохраненный JSON документ
func unmarshalEntity(data string) (models.Entity, error) {
	var entity models.Entity
	if err := json.Unmarshal([]byte(data), &entity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return entity, nil
}
