package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iudanet/chatsync/internal/models"
	"github.com/iudanet/chatsync/pkg/api"
)

var (
	// ErrNotFound indicates that the requested entity does not exist on the server
	ErrNotFound = errors.New("entity not found")

	// ErrConflict indicates that an entity with the same id already exists
	ErrConflict = errors.New("entity already exists")
)

//go:generate moq -out ../sync/apiclient_mock.go -pkg sync . ClientAPI

// ClientAPI определяет интерфейс REST клиента удаленного хранилища.
// Контракт: один ресурсный путь на тип сущности, тела ответов
// завернуты в {"data": ...}.
type ClientAPI interface {
	// ListEntities возвращает все сущности типа
	ListEntities(ctx context.Context, entityType string) ([]models.Entity, error)

	// GetEntity возвращает сущность по id.
	// Возвращает ErrNotFound, если сущность не существует.
	GetEntity(ctx context.Context, entityType, id string) (models.Entity, error)

	// CreateEntity создает сущность и возвращает серверную версию.
	// Возвращает ErrConflict, если сущность с таким id уже существует.
	CreateEntity(ctx context.Context, entityType string, entity models.Entity) (models.Entity, error)

	// UpdateEntity обновляет сущность и возвращает серверную версию
	UpdateEntity(ctx context.Context, entityType, id string, entity models.Entity) (models.Entity, error)

	// DeleteEntity удаляет сущность.
	// Возвращает ErrNotFound, если сущность не существует.
	DeleteEntity(ctx context.Context, entityType, id string) error
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ ClientAPI = (*Client)(nil)

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// ListEntities возвращает все сущности типа
func (c *Client) ListEntities(ctx context.Context, entityType string) ([]models.Entity, error) {
	var resp api.EntityListResponse
	path := "/" + url.PathEscape(entityType)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list %s request failed: %w", entityType, err)
	}

	entities := make([]models.Entity, 0, len(resp.Data))
	for _, raw := range resp.Data {
		entities = append(entities, models.Entity(raw))
	}
	return entities, nil
}

// GetEntity возвращает сущность по id
func (c *Client) GetEntity(ctx context.Context, entityType, id string) (models.Entity, error) {
	var resp api.EntityResponse
	path := "/" + url.PathEscape(entityType) + "/" + url.PathEscape(id)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s request failed: %w", entityType, id, err)
	}
	return models.Entity(resp.Data), nil
}

// CreateEntity создает сущность
func (c *Client) CreateEntity(ctx context.Context, entityType string, entity models.Entity) (models.Entity, error) {
	var resp api.EntityResponse
	path := "/" + url.PathEscape(entityType)
	body := api.EntityRequest{Data: entity}
	if err := c.doRequest(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, fmt.Errorf("create %s request failed: %w", entityType, err)
	}
	return models.Entity(resp.Data), nil
}

// UpdateEntity обновляет сущность
func (c *Client) UpdateEntity(ctx context.Context, entityType, id string, entity models.Entity) (models.Entity, error) {
	var resp api.EntityResponse
	path := "/" + url.PathEscape(entityType) + "/" + url.PathEscape(id)
	body := api.EntityRequest{Data: entity}
	if err := c.doRequest(ctx, http.MethodPut, path, body, &resp); err != nil {
		return nil, fmt.Errorf("update %s/%s request failed: %w", entityType, id, err)
	}
	return models.Entity(resp.Data), nil
}

// DeleteEntity удаляет сущность
func (c *Client) DeleteEntity(ctx context.Context, entityType, id string) error {
	path := "/" + url.PathEscape(entityType) + "/" + url.PathEscape(id)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete %s/%s request failed: %w", entityType, id, err)
	}
	return nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// 404 и 409 отображаются в сентинельные ошибки
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode == http.StatusConflict {
		return ErrConflict
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
