// Package sync содержит клиентский движок синхронизации: локальные хранилища
// сущностей, офлайн-очередь отложенных операций, разрешение конфликтов по
// настраиваемым стратегиям и опциональный realtime-канал живых обновлений.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/chatsync/internal/client/api"
	"github.com/iudanet/chatsync/internal/client/queue"
	"github.com/iudanet/chatsync/internal/client/realtime"
	"github.com/iudanet/chatsync/internal/models"
	"github.com/iudanet/chatsync/internal/sync/resolve"
)

// State режим работы движка синхронизации
type State string

const (
	// StateOffline сервер недоступен или отключен явно, мутации копятся в очереди
	StateOffline State = "OFFLINE"

	// StateOnlineIdle сервер доступен, синхронизация не выполняется
	StateOnlineIdle State = "ONLINE_IDLE"

	// StateOnlineSyncing выполняется цикл синхронизации
	StateOnlineSyncing State = "ONLINE_SYNCING"
)

// maxReplayAttempts предел повторов одной операции очереди,
// после которого она отбрасывается, чтобы не блокировать остальные
const maxReplayAttempts = 5

// RealtimeChannel канал живых обновлений между клиентами
type RealtimeChannel interface {
	Subscribe(entityType string, callback func(models.Entity)) func()
	Unsubscribe(entityType string)
	Publish(ctx context.Context, entityType string, data models.Entity) error
	Disconnect() error
}

// Config параметры движка синхронизации
type Config struct {
	// Strategies стратегия разрешения конфликтов на тип сущности
	Strategies map[string]resolve.Strategy

	// DefaultStrategy стратегия для типов вне реестра; по умолчанию merge
	DefaultStrategy resolve.Strategy

	// Realtime параметры realtime-канала для EnableRealTime
	Realtime realtime.Config
}

// SyncResult итог одного цикла синхронизации
type SyncResult struct {
	// Replayed операций очереди доставлено на сервер
	Replayed int
	// Dropped операций отброшено после исчерпания повторов
	Dropped int
	// Pushed локальных сущностей создано на сервере
	Pushed int
	// Pulled серверных сущностей принято локально
	Pulled int
	// Resolved конфликтов разрешено
	Resolved int
	// Errors ошибки, не прервавшие цикл
	Errors []string
}

// Service движок синхронизации. Все методы безопасны для
// конкурентного вызова.
type Service struct {
	client api.ClientAPI
	queue  *queue.Queue
	logger *slog.Logger

	strategies      map[string]resolve.Strategy
	defaultStrategy resolve.Strategy
	realtimeConfig  realtime.Config

	mu           sync.Mutex
	state        State
	stores       map[string]map[string]models.Entity
	resolvers    map[resolve.Strategy]resolve.Resolver
	realtime     RealtimeChannel
	unsubscribes []func()

	// connectRealtime подменяется в тестах
	connectRealtime func(ctx context.Context) (RealtimeChannel, error)
	now             func() time.Time
}

// NewService создает движок в состоянии ONLINE_IDLE
func NewService(client api.ClientAPI, q *queue.Queue, cfg Config, logger *slog.Logger) *Service {
	if cfg.DefaultStrategy == "" {
		cfg.DefaultStrategy = resolve.StrategyMerge
	}
	strategies := make(map[string]resolve.Strategy, len(cfg.Strategies))
	for entityType, strategy := range cfg.Strategies {
		strategies[entityType] = strategy
	}

	s := &Service{
		client:          client,
		queue:           q,
		logger:          logger,
		strategies:      strategies,
		defaultStrategy: cfg.DefaultStrategy,
		realtimeConfig:  cfg.Realtime,
		state:           StateOnlineIdle,
		stores:          make(map[string]map[string]models.Entity),
		resolvers:       make(map[resolve.Strategy]resolve.Resolver),
		now:             time.Now,
	}
	s.connectRealtime = func(ctx context.Context) (RealtimeChannel, error) {
		return realtime.Connect(ctx, s.realtimeConfig, logger)
	}

	return s
}

// State возвращает текущий режим работы
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PendingCount число операций, ожидающих доставки на сервер
func (s *Service) PendingCount() int {
	return s.queue.Size()
}

// Get возвращает копию сущности из локального хранилища
func (s *Service) Get(entityType, id string) (models.Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, ok := s.stores[entityType][id]
	if !ok {
		return nil, false
	}
	return entity.Clone(), true
}

// List возвращает копии всех локальных сущностей типа
func (s *Service) List(entityType string) []models.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	entities := make([]models.Entity, 0, len(s.stores[entityType]))
	for _, entity := range s.stores[entityType] {
		entities = append(entities, entity.Clone())
	}
	return entities
}

// SyncEntity применяет локальную мутацию и доставляет ее на сервер.
// В офлайне мутация применяется оптимистично и встает в очередь; сетевой
// сбой в онлайне откатывает движок на тот же офлайн-путь без потери данных.
func (s *Service) SyncEntity(ctx context.Context, entityType string, entity models.Entity) (models.Entity, error) {
	local := entity.Clone()
	if local.ID() == "" {
		local[models.FieldID] = uuid.New().String()
	}
	// Сущность с уже проставленным updatedAt сохраняется как есть,
	// иначе свежий штамп сместил бы last-write-wins в пользу клиента
	if local.UpdatedAt().IsZero() {
		local.SetUpdatedAt(s.now())
	}

	s.mu.Lock()
	s.putLocked(entityType, local)
	offline := s.state == StateOffline
	s.mu.Unlock()

	if offline {
		if err := s.enqueue(ctx, models.OpUpdate, entityType, local); err != nil {
			return nil, err
		}
		return local.Clone(), nil
	}

	synced, err := s.pushEntity(ctx, entityType, local)
	if err != nil {
		// Сервер недоступен: сохраняем мутацию в очереди,
		// она доедет при следующем Sync
		s.logger.Warn("Failed to reach server, queueing operation",
			"entity_type", entityType,
			"entity_id", local.ID(),
			"error", err)
		if qErr := s.enqueue(ctx, models.OpUpdate, entityType, local); qErr != nil {
			return nil, errors.Join(err, qErr)
		}
		return local.Clone(), nil
	}

	s.mu.Lock()
	s.putLocked(entityType, synced)
	rt := s.realtime
	s.mu.Unlock()

	if rt != nil {
		if err := rt.Publish(ctx, entityType, synced); err != nil {
			s.logger.Warn("Failed to publish realtime update",
				"entity_type", entityType,
				"entity_id", synced.ID(),
				"error", err)
		}
	}

	return synced.Clone(), nil
}

// DeleteEntity удаляет сущность локально и на сервере. В офлайне или при
// сетевом сбое удаление встает в очередь и доедет при следующем Sync.
func (s *Service) DeleteEntity(ctx context.Context, entityType, id string) error {
	s.mu.Lock()
	entity, ok := s.stores[entityType][id]
	if ok {
		entity = entity.Clone()
		delete(s.stores[entityType], id)
	}
	offline := s.state == StateOffline
	s.mu.Unlock()

	if entity == nil {
		entity = models.Entity{models.FieldID: id}
	}

	if offline {
		return s.enqueue(ctx, models.OpDelete, entityType, entity)
	}

	err := s.client.DeleteEntity(ctx, entityType, id)
	if err == nil || errors.Is(err, api.ErrNotFound) {
		return nil
	}

	s.logger.Warn("Failed to reach server, queueing delete",
		"entity_type", entityType,
		"entity_id", id,
		"error", err)
	return s.enqueue(ctx, models.OpDelete, entityType, entity)
}

// Sync выполняет полный цикл: сначала воспроизводит очередь в порядке
// поступления, затем сверяет каждое локальное хранилище с сервером.
// Первый сбой воспроизведения останавливает очередь, чтобы сохранить
// порядок операций; сбой сверки одного типа не мешает остальным.
func (s *Service) Sync(ctx context.Context) (*SyncResult, error) {
	s.mu.Lock()
	if s.state == StateOffline {
		s.mu.Unlock()
		return nil, ErrOffline
	}
	// Цикл уже идет: параллельный запуск перемешал бы порядок
	// воспроизведения очереди, поэтому повторный вызов ничего не делает
	if s.state == StateOnlineSyncing {
		s.mu.Unlock()
		s.logger.Debug("Sync already in progress, skipping")
		return &SyncResult{}, nil
	}
	s.state = StateOnlineSyncing
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.state == StateOnlineSyncing {
			s.state = StateOnlineIdle
		}
		s.mu.Unlock()
	}()

	result := &SyncResult{}

	if err := s.replayQueue(ctx, result); err != nil {
		return result, fmt.Errorf("failed to replay queue: %w", err)
	}

	for _, entityType := range s.trackedTypes() {
		if err := s.reconcileType(ctx, entityType, result); err != nil {
			s.logger.Error("Failed to reconcile entity type",
				"entity_type", entityType,
				"error", err)
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: %v", entityType, err))
		}
	}

	s.logger.Info("Sync cycle finished",
		"replayed", result.Replayed,
		"dropped", result.Dropped,
		"pushed", result.Pushed,
		"pulled", result.Pulled,
		"resolved", result.Resolved,
		"errors", len(result.Errors))

	return result, nil
}

// ResolveConflict разрешает конфликт версий по стратегии типа сущности.
// Результат сразу сохраняется в локальном хранилище.
func (s *Service) ResolveConflict(entityType string, clientVersion, serverVersion models.Entity) models.Entity {
	resolved := s.resolverFor(entityType).Resolve(clientVersion, serverVersion)

	if resolved.ID() != "" {
		s.mu.Lock()
		s.putLocked(entityType, resolved)
		s.mu.Unlock()
	}

	return resolved
}

// EnableRealTime подключает realtime-канал и подписывает все
// отслеживаемые типы на входящие обновления
func (s *Service) EnableRealTime(ctx context.Context) error {
	s.mu.Lock()
	if s.realtime != nil {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	channel, err := s.connectRealtime(ctx)
	if err != nil {
		return fmt.Errorf("failed to enable realtime: %w", err)
	}

	s.mu.Lock()

	// Пока шло подключение, канал мог установить конкурентный вызов;
	// проигравшее соединение закрываем, чтобы оно не повисло
	if s.realtime != nil {
		s.mu.Unlock()
		if err := channel.Disconnect(); err != nil {
			s.logger.Warn("Failed to close redundant realtime channel", "error", err)
		}
		return nil
	}
	defer s.mu.Unlock()

	s.realtime = channel
	for _, entityType := range s.trackedTypesLocked() {
		s.subscribeLocked(entityType)
	}

	s.logger.Info("Realtime updates enabled")
	return nil
}

// DisableRealTime снимает подписки и закрывает realtime-канал
func (s *Service) DisableRealTime() error {
	s.mu.Lock()
	channel := s.realtime
	unsubscribes := s.unsubscribes
	s.realtime = nil
	s.unsubscribes = nil
	s.mu.Unlock()

	if channel == nil {
		return ErrRealtimeDisabled
	}

	for _, unsubscribe := range unsubscribes {
		unsubscribe()
	}

	if err := channel.Disconnect(); err != nil {
		return fmt.Errorf("failed to disable realtime: %w", err)
	}

	s.logger.Info("Realtime updates disabled")
	return nil
}

// GoOffline переводит движок в офлайн: мутации продолжают применяться
// локально и копятся в очереди
func (s *Service) GoOffline() {
	s.mu.Lock()
	s.state = StateOffline
	s.mu.Unlock()

	s.logger.Info("Switched to offline mode", "pending", s.queue.Size())
}

// GoOnline возвращает движок в онлайн и сразу запускает цикл синхронизации
func (s *Service) GoOnline(ctx context.Context) (*SyncResult, error) {
	s.mu.Lock()
	s.state = StateOnlineIdle
	s.mu.Unlock()

	s.logger.Info("Switched to online mode", "pending", s.queue.Size())
	return s.Sync(ctx)
}

// enqueue ставит операцию в очередь отложенной доставки
func (s *Service) enqueue(ctx context.Context, opType models.OperationType, entityType string, entity models.Entity) error {
	op := models.SyncOperation{
		Type:       opType,
		EntityType: entityType,
		Entity:     entity,
		ClientID:   s.realtimeConfig.ClientID,
		Timestamp:  s.now().UnixMilli(),
	}
	if err := s.queue.Enqueue(ctx, op); err != nil {
		return fmt.Errorf("failed to enqueue operation: %w", err)
	}

	s.logger.Debug("Operation queued",
		"entity_type", entityType,
		"entity_id", entity.ID(),
		"pending", s.queue.Size())
	return nil
}

// pushEntity доставляет локальную версию на сервер: конфликт с серверной
// версией разрешается стратегией, отсутствующая сущность создается
func (s *Service) pushEntity(ctx context.Context, entityType string, local models.Entity) (models.Entity, error) {
	remote, err := s.client.GetEntity(ctx, entityType, local.ID())
	if errors.Is(err, api.ErrNotFound) {
		return s.client.CreateEntity(ctx, entityType, local)
	}
	if err != nil {
		return nil, err
	}

	resolved := s.resolverFor(entityType).Resolve(local, remote)
	return s.client.UpdateEntity(ctx, entityType, resolved.ID(), resolved)
}

// replayQueue воспроизводит очередь строго в порядке поступления.
// Операция, провалившаяся maxReplayAttempts раз подряд, отбрасывается
// с записью в лог; более свежий сбой останавливает воспроизведение.
func (s *Service) replayQueue(ctx context.Context, result *SyncResult) error {
	for {
		op := s.queue.Peek()
		if op == nil {
			return nil
		}

		synced, err := s.replayOperation(ctx, *op)
		if err != nil {
			attempts, recordErr := s.queue.RecordFailure(ctx)
			if recordErr != nil {
				return errors.Join(err, recordErr)
			}

			if attempts >= maxReplayAttempts {
				// Ядовитая операция: дальше держать ее в голове очереди
				// значит навсегда заблокировать доставку остальных
				s.logger.Error("Dropping operation after repeated failures",
					"entity_type", op.EntityType,
					"entity_id", op.Entity.ID(),
					"attempts", attempts,
					"error", err)
				if _, dqErr := s.queue.Dequeue(ctx); dqErr != nil {
					return errors.Join(err, dqErr)
				}
				result.Dropped++
				continue
			}

			return fmt.Errorf("operation for %s/%s failed (attempt %d): %w",
				op.EntityType, op.Entity.ID(), attempts, err)
		}

		if _, err := s.queue.Dequeue(ctx); err != nil {
			return fmt.Errorf("failed to consume replayed operation: %w", err)
		}

		s.mu.Lock()
		if op.Type == models.OpDelete {
			delete(s.stores[op.EntityType], op.Entity.ID())
		} else {
			s.putLocked(op.EntityType, synced)
		}
		s.mu.Unlock()

		result.Replayed++
	}
}

// replayOperation доставляет одну операцию очереди на сервер
func (s *Service) replayOperation(ctx context.Context, op models.SyncOperation) (models.Entity, error) {
	switch op.Type {
	case models.OpDelete:
		err := s.client.DeleteEntity(ctx, op.EntityType, op.Entity.ID())
		if err != nil && !errors.Is(err, api.ErrNotFound) {
			return nil, err
		}
		return op.Entity, nil
	case models.OpCreate, models.OpUpdate:
		return s.pushEntity(ctx, op.EntityType, op.Entity)
	default:
		return nil, fmt.Errorf("unknown operation type %q", op.Type)
	}
}

// reconcileType сверяет локальное хранилище типа с сервером:
// общие сущности проходят через резолвер, локальные новинки создаются,
// серверные принимаются как есть
func (s *Service) reconcileType(ctx context.Context, entityType string, result *SyncResult) error {
	remotes, err := s.client.ListEntities(ctx, entityType)
	if err != nil {
		return fmt.Errorf("failed to list remote entities: %w", err)
	}

	s.mu.Lock()
	locals := make(map[string]models.Entity, len(s.stores[entityType]))
	for id, entity := range s.stores[entityType] {
		locals[id] = entity.Clone()
	}
	s.mu.Unlock()

	resolver := s.resolverFor(entityType)
	seen := make(map[string]bool, len(remotes))

	for _, remote := range remotes {
		id := remote.ID()
		if id == "" {
			continue
		}
		seen[id] = true

		local, ok := locals[id]
		if !ok {
			s.mu.Lock()
			s.putLocked(entityType, remote)
			s.mu.Unlock()
			result.Pulled++
			continue
		}

		if local.Equal(remote) {
			continue
		}

		resolved := resolver.Resolve(local, remote)
		if !resolved.Equal(remote) {
			resolved, err = s.client.UpdateEntity(ctx, entityType, id, resolved)
			if err != nil {
				return fmt.Errorf("failed to push resolved entity %s: %w", id, err)
			}
		}

		s.mu.Lock()
		s.putLocked(entityType, resolved)
		s.mu.Unlock()
		result.Resolved++
	}

	for id, local := range locals {
		if seen[id] {
			continue
		}
		created, err := s.client.CreateEntity(ctx, entityType, local)
		if err != nil {
			return fmt.Errorf("failed to push local entity %s: %w", id, err)
		}

		s.mu.Lock()
		s.putLocked(entityType, created)
		s.mu.Unlock()
		result.Pushed++
	}

	return nil
}

// subscribeLocked подписывает тип на входящие realtime-обновления.
// Вызывается под s.mu.
func (s *Service) subscribeLocked(entityType string) {
	unsubscribe := s.realtime.Subscribe(entityType, func(entity models.Entity) {
		s.applyRemote(entityType, entity)
	})
	s.unsubscribes = append(s.unsubscribes, unsubscribe)
}

// applyRemote применяет входящее realtime-обновление к локальному
// хранилищу. Устаревшие версии отбрасываются по updatedAt, иначе
// запоздавший broadcast затер бы более свежую локальную правку.
func (s *Service) applyRemote(entityType string, entity models.Entity) {
	id := entity.ID()
	if id == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.stores[entityType][id]; ok {
		if current.UpdatedAt().After(entity.UpdatedAt()) {
			s.logger.Debug("Ignoring stale realtime update",
				"entity_type", entityType,
				"entity_id", id)
			return
		}
	}

	s.putLocked(entityType, entity)
	s.logger.Debug("Applied realtime update",
		"entity_type", entityType,
		"entity_id", id)
}

// putLocked кладет копию сущности в хранилище типа. Вызывается под s.mu.
func (s *Service) putLocked(entityType string, entity models.Entity) {
	if s.stores[entityType] == nil {
		s.stores[entityType] = make(map[string]models.Entity)
	}
	s.stores[entityType][entity.ID()] = entity.Clone()
}

// resolverFor возвращает резолвер стратегии типа, кешируя экземпляры
func (s *Service) resolverFor(entityType string) resolve.Resolver {
	s.mu.Lock()
	defer s.mu.Unlock()

	strategy, ok := s.strategies[entityType]
	if !ok {
		strategy = s.defaultStrategy
	}

	resolver, ok := s.resolvers[strategy]
	if !ok {
		resolver = resolve.NewWithClock(strategy, s.now)
		s.resolvers[strategy] = resolver
	}
	return resolver
}

// trackedTypes типы, участвующие в сверке и realtime-подписках
func (s *Service) trackedTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trackedTypesLocked()
}

func (s *Service) trackedTypesLocked() []string {
	set := make(map[string]bool, len(s.strategies)+len(s.stores))
	for entityType := range s.strategies {
		set[entityType] = true
	}
	for entityType := range s.stores {
		set[entityType] = true
	}

	types := make([]string, 0, len(set))
	for entityType := range set {
		types = append(types, entityType)
	}
	slices.Sort(types)
	return types
}
