package models

import (
	"reflect"
	"time"
)

// Ключи служебных полей сущности
const (
	// FieldID уникальный идентификатор сущности (строка, назначается при создании)
	FieldID = "id"
	// FieldUpdatedAt время последнего изменения в формате RFC 3339
	FieldUpdatedAt = "updatedAt"
)

// Entity представляет синхронизируемую сущность с открытым набором полей.
// Обязательные поля: id и updatedAt; остальные поля произвольны и
// сохраняются как есть при JSON сериализации.
type Entity map[string]any

// ID возвращает идентификатор сущности или пустую строку
func (e Entity) ID() string {
	id, _ := e[FieldID].(string)
	return id
}

// UpdatedAt возвращает время последнего изменения.
// Возвращает нулевое время, если поле отсутствует или не парсится.
func (e Entity) UpdatedAt() time.Time {
	raw, _ := e[FieldUpdatedAt].(string)
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SetUpdatedAt устанавливает время последнего изменения
func (e Entity) SetUpdatedAt(t time.Time) {
	e[FieldUpdatedAt] = t.UTC().Format(time.RFC3339Nano)
}

// Clone создает глубокую копию сущности.
// Копируются вложенные объекты и массивы; скалярные значения неизменяемы.
func (e Entity) Clone() Entity {
	if e == nil {
		return nil
	}
	return Entity(cloneMap(e))
}

// Equal сравнивает две сущности по структурному равенству всех полей
func (e Entity) Equal(other Entity) bool {
	return reflect.DeepEqual(map[string]any(e), map[string]any(other))
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		// Скаляры (string, float64, bool, nil) копируются по значению
		return v
	}
}
