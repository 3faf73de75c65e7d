package api

// EntityRequest представляет тело запроса создания или обновления сущности
type EntityRequest struct {
	Data map[string]any `json:"data"`
}

// EntityResponse представляет ответ сервера с одной сущностью
type EntityResponse struct {
	Data map[string]any `json:"data"`
}

// EntityListResponse представляет ответ сервера со списком сущностей
type EntityListResponse struct {
	Data []map[string]any `json:"data"`
}

// ErrorResponse представляет ответ сервера с ошибкой
type ErrorResponse struct {
	Message string `json:"message"`
}

// Типы real-time сообщений
const (
	// MessageTypeConnect отправляется клиентом один раз после открытия канала
	MessageTypeConnect = "connect"
	// MessageTypeUpdate несет обновление сущности
	MessageTypeUpdate = "update"
)

// RealtimeMessage представляет конверт real-time канала.
// Клиент, получивший update с собственным ClientID, обязан его игнорировать
// (подавление эха).
type RealtimeMessage struct {
	Data       map[string]any `json:"data,omitempty"`
	Type       string         `json:"type"`
	EntityType string         `json:"entityType,omitempty"`
	ClientID   string         `json:"clientId"`
}
