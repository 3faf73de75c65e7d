// Package resolve реализует стратегии разрешения конфликтов между клиентской
// и серверной версиями одной сущности. Все стратегии чистые: не выполняют I/O
// и детерминированы при фиксированных часах.
package resolve

import (
	"time"

	"github.com/iudanet/chatsync/internal/models"
	"github.com/iudanet/chatsync/internal/sync/diff"
)

// Strategy тег стратегии разрешения конфликтов
type Strategy string

// Закрытый набор стратегий
const (
	// StrategyLastWriteWins выбирает версию с более поздним updatedAt
	StrategyLastWriteWins Strategy = "last-write-wins"
	// StrategyMerge сливает изменения клиента поверх серверной версии
	StrategyMerge Strategy = "merge"
	// StrategyClientWins всегда берет клиентскую версию
	StrategyClientWins Strategy = "client-wins"
	// StrategyServerWins всегда берет серверную версию
	StrategyServerWins Strategy = "server-wins"
)

// Resolver разрешает конфликт двух версий одной сущности
type Resolver interface {
	// Resolve возвращает единственную результирующую версию.
	// Аргументы не модифицируются.
	Resolve(clientVersion, serverVersion models.Entity) models.Entity
}

// Compile-time проверки реализации интерфейса
var (
	_ Resolver = (*lastWriteWinsResolver)(nil)
	_ Resolver = (*mergeResolver)(nil)
	_ Resolver = (*clientWinsResolver)(nil)
	_ Resolver = (*serverWinsResolver)(nil)
)

// New создает resolver для указанной стратегии.
// Неизвестная стратегия отображается в Merge (стратегия по умолчанию).
func New(strategy Strategy) Resolver {
	return NewWithClock(strategy, time.Now)
}

// NewWithClock создает resolver с инжектированными часами
func NewWithClock(strategy Strategy, now func() time.Time) Resolver {
	switch strategy {
	case StrategyLastWriteWins:
		return &lastWriteWinsResolver{}
	case StrategyClientWins:
		return &clientWinsResolver{now: now}
	case StrategyServerWins:
		return &serverWinsResolver{}
	case StrategyMerge:
		return &mergeResolver{calc: diff.NewCalculatorWithClock(now), now: now}
	default:
		return &mergeResolver{calc: diff.NewCalculatorWithClock(now), now: now}
	}
}

// lastWriteWinsResolver возвращает версию со строго более поздним updatedAt.
// При равных временах выигрывает серверная версия.
type lastWriteWinsResolver struct{}

func (r *lastWriteWinsResolver) Resolve(clientVersion, serverVersion models.Entity) models.Entity {
	if clientVersion.UpdatedAt().After(serverVersion.UpdatedAt()) {
		return clientVersion
	}
	return serverVersion
}

// mergeResolver трактует серверную версию как базу и накладывает на нее
// изменения клиента. Для вложенных объектов с обеих сторон выполняется
// глубокое слияние: сперва серверные подполя, поверх них клиентские.
// Поля, удаленные только на клиенте, сохраняют серверное значение
// (сервер — источник истины, клиентские удаления через merge не проходят).
// updatedAt результата сбрасывается на текущее время.
type mergeResolver struct {
	calc *diff.Calculator
	now  func() time.Time
}

func (r *mergeResolver) Resolve(clientVersion, serverVersion models.Entity) models.Entity {
	clientDiff := r.calc.Calculate(serverVersion, clientVersion)

	// Удаления клиента (nil в diff) не применяются к серверной базе
	for key, value := range clientDiff {
		if value == nil {
			delete(clientDiff, key)
		}
	}
	delete(clientDiff, models.FieldUpdatedAt)

	return r.calc.Apply(serverVersion, clientDiff)
}

// clientWinsResolver возвращает клиентскую версию со свежим updatedAt
type clientWinsResolver struct {
	now func() time.Time
}

func (r *clientWinsResolver) Resolve(clientVersion, serverVersion models.Entity) models.Entity {
	resolved := clientVersion.Clone()
	resolved.SetUpdatedAt(r.now())
	return resolved
}

// serverWinsResolver возвращает серверную версию без изменений,
// включая серверный updatedAt
type serverWinsResolver struct{}

func (r *serverWinsResolver) Resolve(clientVersion, serverVersion models.Entity) models.Entity {
	return serverVersion
}
