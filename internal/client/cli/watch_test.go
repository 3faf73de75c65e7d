package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Без доступного realtime-сервера watch завершается с ошибкой подключения,
// а не зависает
func TestRunWatch_ConnectFailure(t *testing.T) {
	cli, _ := newTestCli(t, echoClient())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := cli.runWatch(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start watching")
}
