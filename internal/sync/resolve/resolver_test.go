package resolve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatsync/internal/models"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestNew_Factory(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		wantType Resolver
	}{
		{"last write wins", StrategyLastWriteWins, &lastWriteWinsResolver{}},
		{"client wins", StrategyClientWins, &clientWinsResolver{}},
		{"server wins", StrategyServerWins, &serverWinsResolver{}},
		{"merge", StrategyMerge, &mergeResolver{}},
		{"unknown falls back to merge", Strategy("bogus"), &mergeResolver{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.strategy)
			assert.IsType(t, tt.wantType, r)
		})
	}
}

func TestLastWriteWins(t *testing.T) {
	client := models.Entity{
		"id":        "1",
		"updatedAt": "2024-01-01T00:00:00Z",
		"title":     "client",
	}
	server := models.Entity{
		"id":        "1",
		"updatedAt": "2024-01-02T00:00:00Z",
		"title":     "server",
	}

	r := NewWithClock(StrategyLastWriteWins, fixedClock)

	// Клиент строго раньше сервера: возвращается серверная версия дословно
	resolved := r.Resolve(client, server)
	require.True(t, resolved.Equal(server))

	// Клиент строго позже: возвращается клиентская версия дословно
	later := client.Clone()
	later["updatedAt"] = "2024-01-03T00:00:00Z"
	resolved = r.Resolve(later, server)
	require.True(t, resolved.Equal(later))

	// Равные времена: выигрывает сервер
	tied := client.Clone()
	tied["updatedAt"] = server["updatedAt"]
	resolved = r.Resolve(tied, server)
	require.True(t, resolved.Equal(server))
}

func TestMerge_ClientFieldOverServerBase(t *testing.T) {
	// Общая база {title: "base"}; клиент изменил title, сервер добавил body
	client := models.Entity{"id": "1", "title": "X"}
	server := models.Entity{"id": "1", "title": "Y", "body": "Z"}

	r := NewWithClock(StrategyMerge, fixedClock)
	resolved := r.Resolve(client, server)

	assert.Equal(t, "X", resolved["title"])
	assert.Equal(t, "Z", resolved["body"])
	assert.Equal(t, fixedNow, resolved.UpdatedAt())
}

func TestMerge_NestedObjectsDeepMerged(t *testing.T) {
	client := models.Entity{
		"id": "1",
		"meta": map[string]any{
			"draft": true,
		},
	}
	server := models.Entity{
		"id": "1",
		"meta": map[string]any{
			"draft":  false,
			"author": "alice",
		},
	}

	r := NewWithClock(StrategyMerge, fixedClock)
	resolved := r.Resolve(client, server)

	meta := resolved["meta"].(map[string]any)
	// Клиентские подполя поверх серверных
	assert.Equal(t, true, meta["draft"])
	// Нетронутые серверные подполя сохраняются
	assert.Equal(t, "alice", meta["author"])
}

func TestMerge_ClientDeletionDoesNotPropagate(t *testing.T) {
	client := models.Entity{"id": "1", "title": "x"}
	server := models.Entity{"id": "1", "title": "x", "body": "keep me"}

	r := NewWithClock(StrategyMerge, fixedClock)
	resolved := r.Resolve(client, server)

	assert.Equal(t, "keep me", resolved["body"])
}

func TestMerge_DoesNotMutateArguments(t *testing.T) {
	client := models.Entity{"id": "1", "title": "client", "updatedAt": "2024-01-01T00:00:00Z"}
	server := models.Entity{"id": "1", "title": "server", "updatedAt": "2024-01-02T00:00:00Z"}

	clientCopy := client.Clone()
	serverCopy := server.Clone()

	r := NewWithClock(StrategyMerge, fixedClock)
	_ = r.Resolve(client, server)

	assert.True(t, client.Equal(clientCopy))
	assert.True(t, server.Equal(serverCopy))
}

func TestClientWins(t *testing.T) {
	client := models.Entity{"id": "1", "title": "client", "updatedAt": "2024-01-01T00:00:00Z"}
	server := models.Entity{"id": "1", "title": "server", "updatedAt": "2024-01-02T00:00:00Z"}

	r := NewWithClock(StrategyClientWins, fixedClock)
	resolved := r.Resolve(client, server)

	assert.Equal(t, "client", resolved["title"])
	// updatedAt сбрасывается на текущее время
	assert.Equal(t, fixedNow, resolved.UpdatedAt())
	// Оригинал клиента не модифицируется
	assert.Equal(t, "2024-01-01T00:00:00Z", client["updatedAt"])
}

func TestServerWins(t *testing.T) {
	client := models.Entity{"id": "1", "title": "client", "updatedAt": "2024-01-03T00:00:00Z"}
	server := models.Entity{"id": "1", "title": "server", "updatedAt": "2024-01-02T00:00:00Z"}

	r := NewWithClock(StrategyServerWins, fixedClock)
	resolved := r.Resolve(client, server)

	// Серверная версия дословно, включая серверный updatedAt
	require.True(t, resolved.Equal(server))
}

func TestResolvers_Deterministic(t *testing.T) {
	client := models.Entity{"id": "1", "title": "a", "updatedAt": "2024-01-01T00:00:00Z"}
	server := models.Entity{"id": "1", "title": "b", "updatedAt": "2024-01-02T00:00:00Z"}

	for _, strategy := range []Strategy{
		StrategyLastWriteWins, StrategyMerge, StrategyClientWins, StrategyServerWins,
	} {
		r := NewWithClock(strategy, fixedClock)
		first := r.Resolve(client, server)
		second := r.Resolve(client, server)
		assert.True(t, first.Equal(second), "strategy %s not deterministic", strategy)
	}
}
