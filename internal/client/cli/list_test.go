package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunList_Empty(t *testing.T) {
	cli, out := newTestCli(t, echoClient())

	require.NoError(t, cli.runList([]string{"messages"}))

	assert.Contains(t, out.String(), "No entities found.")
	assert.Contains(t, out.String(), "chatsync put messages")
}

func TestRunList_PrintsEntitiesOldestFirst(t *testing.T) {
	cli, out := newTestCli(t, echoClient())
	ctx := context.Background()

	require.NoError(t, cli.runPut(ctx, []string{"messages", "id=msg-old", "text=first"}))
	require.NoError(t, cli.runPut(ctx, []string{"messages", "id=msg-new", "text=second"}))

	out.Reset()
	require.NoError(t, cli.runList([]string{"messages"}))

	assert.Contains(t, out.String(), "Found 2 entity(ies):")
	oldIdx := strings.Index(out.String(), "msg-old")
	newIdx := strings.Index(out.String(), "msg-new")
	require.NotEqual(t, -1, oldIdx)
	require.NotEqual(t, -1, newIdx)
	assert.Less(t, oldIdx, newIdx)
}

func TestRunList_MissingType(t *testing.T) {
	cli, _ := newTestCli(t, echoClient())

	err := cli.runList(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Usage: chatsync list")
}
