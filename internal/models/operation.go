package models

// OperationType тип мутации в очереди отложенных операций
type OperationType string

// Виды операций
const (
	OpCreate OperationType = "create"
	OpUpdate OperationType = "update"
	OpDelete OperationType = "delete"
)

// SyncOperation представляет одну отложенную мутацию в офлайн-очереди.
// Операции воспроизводятся строго в порядке добавления.
type SyncOperation struct {
	Entity     Entity        `json:"entity"`
	Type       OperationType `json:"type"`
	EntityType string        `json:"entityType"`
	ClientID   string        `json:"clientId"`
	Timestamp  int64         `json:"timestamp"`
	// Attempts число неудачных попыток воспроизведения.
	// Операция сбрасывается из очереди после превышения лимита.
	Attempts int `json:"attempts,omitempty"`
}

// Clone создает глубокую копию операции
func (op SyncOperation) Clone() SyncOperation {
	out := op
	out.Entity = op.Entity.Clone()
	return out
}
