package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPut_SavesEntity(t *testing.T) {
	client := echoClient()
	cli, out := newTestCli(t, client)

	err := cli.runPut(context.Background(), []string{"messages", "id=msg-1", "text=hello", "author=alice"})
	require.NoError(t, err)

	require.Len(t, client.CreateEntityCalls(), 1)
	assert.Equal(t, "messages", client.CreateEntityCalls()[0].EntityType)

	assert.Contains(t, out.String(), "Saved messages/msg-1")
	assert.Contains(t, out.String(), "text: hello")
	assert.Contains(t, out.String(), "author: alice")
}

func TestRunPut_MissingArgs(t *testing.T) {
	cli, _ := newTestCli(t, echoClient())

	err := cli.runPut(context.Background(), []string{"messages"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Usage: chatsync put")
}

func TestRunPut_InvalidField(t *testing.T) {
	cli, _ := newTestCli(t, echoClient())

	err := cli.runPut(context.Background(), []string{"messages", "no-equals-here"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected field=value")
}

// В офлайне мутация применяется локально и пользователю видно,
// что операция встала в очередь
func TestRunPut_OfflineWarnsAboutQueue(t *testing.T) {
	cli, out := newTestCli(t, echoClient())
	cli.service.GoOffline()

	err := cli.runPut(context.Background(), []string{"messages", "id=msg-1", "text=hi"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Pending sync: 1 operation(s)")
}
