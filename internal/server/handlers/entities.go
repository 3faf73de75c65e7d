package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/chatsync/internal/models"
	"github.com/iudanet/chatsync/internal/server/storage"
	"github.com/iudanet/chatsync/pkg/api"
)

// Broadcaster рассылает мутацию подписчикам realtime-канала
type Broadcaster interface {
	BroadcastUpdate(entityType string, entity models.Entity, clientID string)
}

// EntitiesHandler handles entity CRUD requests
type EntitiesHandler struct {
	logger      *slog.Logger
	storage     storage.EntityStorage
	broadcaster Broadcaster
}

// NewEntitiesHandler creates a new entities handler.
// broadcaster may be nil when realtime delivery is disabled.
func NewEntitiesHandler(logger *slog.Logger, entityStorage storage.EntityStorage, broadcaster Broadcaster) *EntitiesHandler {
	return &EntitiesHandler{
		logger:      logger,
		storage:     entityStorage,
		broadcaster: broadcaster,
	}
}

// Register регистрирует маршруты CRUD на mux
func (h *EntitiesHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{type}", h.List)
	mux.HandleFunc("POST /{type}", h.Create)
	mux.HandleFunc("GET /{type}/{id}", h.Get)
	mux.HandleFunc("PUT /{type}/{id}", h.Update)
	mux.HandleFunc("DELETE /{type}/{id}", h.Delete)
}

// List обрабатывает GET /{type}
func (h *EntitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	entityType := r.PathValue("type")

	entities, err := h.storage.ListEntities(r.Context(), entityType)
	if err != nil {
		h.logger.Error("Failed to list entities",
			"entity_type", entityType,
			"error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	data := make([]map[string]any, 0, len(entities))
	for _, entity := range entities {
		data = append(data, entity)
	}

	h.writeJSON(w, http.StatusOK, api.EntityListResponse{Data: data})
}

// Get обрабатывает GET /{type}/{id}
func (h *EntitiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	entityType := r.PathValue("type")
	id := r.PathValue("id")

	entity, err := h.storage.GetEntity(r.Context(), entityType, id)
	if err != nil {
		if errors.Is(err, storage.ErrEntityNotFound) {
			h.writeError(w, http.StatusNotFound, "entity not found")
			return
		}
		h.logger.Error("Failed to get entity",
			"entity_type", entityType,
			"entity_id", id,
			"error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, api.EntityResponse{Data: entity})
}

// Create обрабатывает POST /{type}
func (h *EntitiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	entityType := r.PathValue("type")

	entity, ok := h.decodeEntity(w, r)
	if !ok {
		return
	}
	if entity.ID() == "" {
		h.writeError(w, http.StatusBadRequest, "entity id is required")
		return
	}
	if entity.UpdatedAt().IsZero() {
		entity.SetUpdatedAt(time.Now())
	}

	created, err := h.storage.CreateEntity(r.Context(), entityType, entity)
	if err != nil {
		if errors.Is(err, storage.ErrEntityAlreadyExists) {
			h.writeError(w, http.StatusConflict, "entity already exists")
			return
		}
		h.logger.Error("Failed to create entity",
			"entity_type", entityType,
			"entity_id", entity.ID(),
			"error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("Entity created",
		"entity_type", entityType,
		"entity_id", created.ID())

	h.broadcast(entityType, created)
	h.writeJSON(w, http.StatusCreated, api.EntityResponse{Data: created})
}

// Update обрабатывает PUT /{type}/{id}
func (h *EntitiesHandler) Update(w http.ResponseWriter, r *http.Request) {
	entityType := r.PathValue("type")
	id := r.PathValue("id")

	entity, ok := h.decodeEntity(w, r)
	if !ok {
		return
	}

	// Идентификатор берется из пути, тело его переопределить не может
	entity[models.FieldID] = id
	if entity.UpdatedAt().IsZero() {
		entity.SetUpdatedAt(time.Now())
	}

	updated, err := h.storage.UpdateEntity(r.Context(), entityType, id, entity)
	if err != nil {
		if errors.Is(err, storage.ErrEntityNotFound) {
			h.writeError(w, http.StatusNotFound, "entity not found")
			return
		}
		h.logger.Error("Failed to update entity",
			"entity_type", entityType,
			"entity_id", id,
			"error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("Entity updated",
		"entity_type", entityType,
		"entity_id", id)

	h.broadcast(entityType, updated)
	h.writeJSON(w, http.StatusOK, api.EntityResponse{Data: updated})
}

// Delete обрабатывает DELETE /{type}/{id}
func (h *EntitiesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	entityType := r.PathValue("type")
	id := r.PathValue("id")

	if err := h.storage.DeleteEntity(r.Context(), entityType, id); err != nil {
		if errors.Is(err, storage.ErrEntityNotFound) {
			h.writeError(w, http.StatusNotFound, "entity not found")
			return
		}
		h.logger.Error("Failed to delete entity",
			"entity_type", entityType,
			"entity_id", id,
			"error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("Entity deleted",
		"entity_type", entityType,
		"entity_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// decodeEntity разбирает конверт запроса {"data": {...}}
func (h *EntitiesHandler) decodeEntity(w http.ResponseWriter, r *http.Request) (models.Entity, bool) {
	var req api.EntityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if req.Data == nil {
		h.writeError(w, http.StatusBadRequest, "data field is required")
		return nil, false
	}
	return models.Entity(req.Data), true
}

// broadcast уведомляет realtime-подписчиков о REST мутации.
// ClientID пуст: у HTTP запроса нет realtime-идентичности, подавление
// эха в этом случае выполняется монотонной проверкой updatedAt на клиенте.
func (h *EntitiesHandler) broadcast(entityType string, entity models.Entity) {
	if h.broadcaster == nil {
		return
	}
	h.broadcaster.BroadcastUpdate(entityType, entity, "")
}

func (h *EntitiesHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *EntitiesHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, api.ErrorResponse{Message: message})
}
