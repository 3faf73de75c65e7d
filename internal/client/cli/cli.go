package cli

import (
	"fmt"

	"github.com/iudanet/chatsync/internal/client/iocli"
	"github.com/iudanet/chatsync/internal/client/sync"
)

type Cli struct {
	service *sync.Service
	io      iocli.IO
}

func New(service *sync.Service, io iocli.IO) *Cli {
	return &Cli{
		service: service,
		io:      io,
	}
}

func PrintUsage() {
	fmt.Println("ChatSync Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  chatsync [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version            Show version information")
	fmt.Println("  --server URL         Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH            Path to local database (default: chatsync-client.db)")
	fmt.Println("  --ws URL             WebSocket URL (default: derived from --server)")
	fmt.Println("  --client-id ID       Client identifier for realtime updates (default: generated)")
	fmt.Println("  --types SPEC         Conflict strategies per entity type,")
	fmt.Println("                       e.g. messages=merge,contacts=last-write-wins")
	fmt.Println("  --offline            Start in offline mode")
	fmt.Println()
	fmt.Println("Strategies: last-write-wins, merge, client-wins, server-wins (default: merge)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  put <type> field=value ...   Save an entity and sync it with the server")
	fmt.Println("  get <type> <id>              Show full entity details")
	fmt.Println("  list <type>                  List locally known entities")
	fmt.Println("  delete <type> <id>           Delete an entity")
	fmt.Println("  sync                         Run a full sync cycle with the server")
	fmt.Println("  status                       Show sync state and pending operations")
	fmt.Println("  watch                        Stream live updates until interrupted")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  chatsync put messages text=hello author=alice")
	fmt.Println("  chatsync put messages id=b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5 text=edited")
	fmt.Println("  chatsync list messages")
	fmt.Println("  chatsync get messages b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5")
	fmt.Println("  chatsync delete messages b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5")
	fmt.Println("  chatsync --types messages=merge,contacts=last-write-wins sync")
	fmt.Println("  chatsync --server https://example.com watch")
}
