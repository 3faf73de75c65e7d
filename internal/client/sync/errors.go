package sync

import "errors"

var (
	// ErrOffline операция требует сетевого режима
	ErrOffline = errors.New("sync service is offline")

	// ErrRealtimeDisabled realtime-канал не включен
	ErrRealtimeDisabled = errors.New("realtime channel is not enabled")
)
