// Package diff вычисляет и применяет пополевые различия между двумя
// версиями сущности. Пакет чистый: не выполняет I/O и не хранит состояния,
// кроме инжектируемых часов.
package diff

import (
	"reflect"
	"time"

	"github.com/iudanet/chatsync/internal/models"
)

// Calculator вычисляет diff между версиями сущности и накладывает его обратно
type Calculator struct {
	now func() time.Time
}

// NewCalculator создает новый калькулятор с системными часами
func NewCalculator() *Calculator {
	return NewCalculatorWithClock(time.Now)
}

// NewCalculatorWithClock создает калькулятор с инжектированными часами.
// Используется в тестах для детерминизма.
func NewCalculatorWithClock(now func() time.Time) *Calculator {
	return &Calculator{now: now}
}

// Calculate возвращает частичную сущность, содержащую только поля,
// различающиеся между oldVersion и newVersion. Поле id не включается никогда.
// Вложенные объекты сравниваются рекурсивно и включаются только при
// непустом вложенном diff; массивы и скаляры сравниваются структурно целиком.
// Поле, отсутствующее в newVersion, включается со значением nil (удаление).
func (c *Calculator) Calculate(oldVersion, newVersion models.Entity) models.Entity {
	d := diffMaps(oldVersion, newVersion)
	delete(d, models.FieldID)
	return d
}

// Apply возвращает новую сущность: base с наложенными полями diff.
// Для вложенных объектов с обеих сторон выполняется поверхностное слияние
// (поля diff выигрывают); значение nil в diff удаляет поле.
// Поле updatedAt результата всегда обновляется на текущее время.
func (c *Calculator) Apply(base, d models.Entity) models.Entity {
	result := base.Clone()
	if result == nil {
		result = models.Entity{}
	}

	for key, diffValue := range d {
		if diffValue == nil {
			delete(result, key)
			continue
		}

		diffNested, diffIsMap := diffValue.(map[string]any)
		baseNested, baseIsMap := result[key].(map[string]any)
		if diffIsMap && baseIsMap {
			result[key] = mergeMaps(baseNested, diffNested)
			continue
		}

		result[key] = cloneValue(diffValue)
	}

	result.SetUpdatedAt(c.now())
	return result
}

// diffMaps возвращает diff по всем ключам обеих версий
func diffMaps(oldMap, newMap map[string]any) map[string]any {
	d := make(map[string]any)

	for key, newValue := range newMap {
		oldValue, existed := oldMap[key]
		if !existed {
			d[key] = cloneValue(newValue)
			continue
		}

		oldNested, oldIsMap := oldValue.(map[string]any)
		newNested, newIsMap := newValue.(map[string]any)
		if oldIsMap && newIsMap {
			// Рекурсивный diff вложенных объектов
			nestedDiff := diffMaps(oldNested, newNested)
			if len(nestedDiff) > 0 {
				d[key] = nestedDiff
			}
			continue
		}

		if !reflect.DeepEqual(oldValue, newValue) {
			d[key] = cloneValue(newValue)
		}
	}

	// Ключи, удаленные в новой версии
	for key := range oldMap {
		if _, exists := newMap[key]; !exists {
			d[key] = nil
		}
	}

	return d
}

// mergeMaps сливает overlay поверх base: поля overlay выигрывают,
// nil в overlay удаляет поле. Вложенные объекты с обеих сторон сливаются
// рекурсивно, иначе частичный вложенный diff терял бы нетронутые подполя.
func mergeMaps(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = cloneValue(v)
	}
	for k, v := range overlay {
		if v == nil {
			delete(out, k)
			continue
		}
		overlayNested, overlayIsMap := v.(map[string]any)
		baseNested, baseIsMap := out[k].(map[string]any)
		if overlayIsMap && baseIsMap {
			out[k] = mergeMaps(baseNested, overlayNested)
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
