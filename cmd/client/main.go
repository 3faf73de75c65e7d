package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/iudanet/chatsync/internal/client/api"
	"github.com/iudanet/chatsync/internal/client/cli"
	"github.com/iudanet/chatsync/internal/client/iocli"
	"github.com/iudanet/chatsync/internal/client/queue"
	"github.com/iudanet/chatsync/internal/client/realtime"
	"github.com/iudanet/chatsync/internal/client/storage/boltdb"
	"github.com/iudanet/chatsync/internal/client/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "chatsync-client.db", "Path to local database")
	wsURL := flag.String("ws", "", "WebSocket URL (default: derived from --server)")
	clientID := flag.String("client-id", "", "Client identifier for realtime updates")
	typesSpec := flag.String("types", "", "Conflict strategies per entity type, e.g. messages=merge,contacts=last-write-wins")
	offline := flag.Bool("offline", false, "Start in offline mode")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	strategies, err := cli.ParseStrategies(*typesSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Warn по умолчанию, чтобы служебные логи не мешали выводу команд
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Ctrl+C прерывает долгие команды вроде watch
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Поднимаем офлайн-очередь из локальной базы
	q, err := queue.New(ctx, boltStorage, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load offline queue: %v\n", err)
		os.Exit(1)
	}

	// Создаем API клиент
	apiClient := api.NewClient(*serverURL)

	if *wsURL == "" {
		*wsURL = realtimeURL(*serverURL)
	}

	service := sync.NewService(apiClient, q, sync.Config{
		Strategies: strategies,
		Realtime: realtime.Config{
			URL:      *wsURL,
			ClientID: *clientID,
		},
	}, logger)
	if *offline {
		service.GoOffline()
	}

	// Выполняем команду
	c := cli.New(service, iocli.NewStdio())
	c.Run(ctx, command, args[1:])
}

// realtimeURL превращает базовый URL сервера в адрес websocket-канала
func realtimeURL(serverURL string) string {
	url := strings.TrimSuffix(serverURL, "/")
	switch {
	case strings.HasPrefix(url, "https://"):
		url = "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		url = "ws://" + strings.TrimPrefix(url, "http://")
	}
	return url + "/ws"
}

func printVersion() {
	fmt.Printf("ChatSync Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
