package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	logger "github.com/beka-birhanu/vinom-common/log"
	"github.com/beka-birhanu/vinom-maze-client/compression"
	"github.com/beka-birhanu/vinom-maze-client/config"
	"github.com/beka-birhanu/vinom-maze-client/movement"
	"github.com/beka-birhanu/vinom-maze-client/protocol"
	"github.com/beka-birhanu/vinom-maze-client/service"
)

// Global variables for dependencies
var (
	appConfig      config.Config
	protocolClient *protocol.Client
	notifier       *service.ChannelNotifier
	mazeRuntime    *service.Runtime
	appLogger      general_i.Logger
)

const usage = `commands:
  load <file>                         load a saved maze
  save <file>                         save the current maze and position
  generate <rows> <cols>              ask the generation service for a maze
  move <direction>                    up, down, left, right, up-left, ... or numpad 1-9
  solve                               ask the solving service for a solution
  reset                               go back to the start position
  settings <generator> <searcher> <threads>
  show                                print the maze
  quit`

func newLogger(tag, color string) general_i.Logger {
	l, err := logger.New(tag, color, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", tag, err))
		os.Exit(1)
	}
	return l
}

func initProtocolClient() {
	protocolClient = protocol.NewClient(
		protocol.WithTimeout(appConfig.ExchangeTimeout),
		protocol.WithLogger(newLogger("PROTOCOL", config.ColorBlue)),
	)
	appLogger.Info("Protocol client initialized")
}

func initRuntime() {
	settings, err := config.LoadSettings(appConfig.SettingsFile)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Loading settings: %v", err))
		os.Exit(1)
	}

	notifier = service.NewChannelNotifier(appConfig.EventBufferSize, appLogger)
	mazeRuntime, err = service.NewRuntime(&service.Config{
		Generator:    service.Endpoint{Host: appConfig.GeneratorHost, Port: appConfig.GeneratorPort},
		Solver:       service.Endpoint{Host: appConfig.SolverHost, Port: appConfig.SolverPort},
		Exchanger:    protocolClient,
		Decompressor: &compression.Zstd{},
		Notifier:     notifier,
		Logger:       newLogger("MAZE-RUNTIME", config.ColorCyan),
		Settings:     settings,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze runtime: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze runtime initialized")
}

// listenEvents renders every runtime event until the notifier is closed.
// Load, generate, solve and getSolve events are always delivered; move and reset
// events are dropped while this loop lags behind a full buffer.
func listenEvents(out io.Writer, wg *sync.WaitGroup) {
	defer wg.Done()
	for e := range notifier.Events() {
		snap := e.Snapshot
		switch e.Kind {
		case service.EventLoad, service.EventGenerate, service.EventReset:
			fmt.Fprintf(out, "[%s] player at %v\n%s", e.Kind, snap.Position, snap.Maze)
		case service.EventMove:
			fmt.Fprintf(out, "[%s] %s, player at %v\n", e.Kind, snap.LastMoveOutcome, snap.Position)
		case service.EventSolve:
			fmt.Fprintf(out, "[%s] you reached the goal!\n", e.Kind)
		case service.EventGetSolve:
			if snap.Solution == nil {
				fmt.Fprintf(out, "[%s] no solution available\n", e.Kind)
				continue
			}
			fmt.Fprintf(out, "[%s] %d steps: %v\n", e.Kind, snap.Solution.Len(), snap.Solution.States)
		}
	}
}

func runCommand(ctx context.Context, out io.Writer, fields []string) error {
	arg := func(n int) string {
		if len(fields) > n {
			return fields[n]
		}
		return ""
	}

	switch fields[0] {
	case "load":
		return mazeRuntime.Load(arg(1))
	case "save":
		return mazeRuntime.Save(arg(1))
	case "generate":
		rows, err := strconv.Atoi(arg(1))
		if err != nil {
			return fmt.Errorf("%w: rows must be a number", service.ErrInvalidParameters)
		}
		cols, err := strconv.Atoi(arg(2))
		if err != nil {
			return fmt.Errorf("%w: cols must be a number", service.ErrInvalidParameters)
		}
		return mazeRuntime.Generate(ctx, rows, cols)
	case "move":
		_, err := mazeRuntime.Move(movement.ParseDirection(arg(1)))
		return err
	case "solve":
		return mazeRuntime.RequestSolution(ctx)
	case "reset":
		return mazeRuntime.Reset()
	case "settings":
		threads, err := strconv.Atoi(arg(3))
		if err != nil {
			return fmt.Errorf("%w: threads must be a number", config.ErrInvalidSettings)
		}
		return mazeRuntime.SaveSettings(config.Settings{Generator: arg(1), Searcher: arg(2), Threads: threads})
	case "show":
		if m := mazeRuntime.Maze(); m != nil {
			fmt.Fprintf(out, "player at %v\n%s", mazeRuntime.Position(), m)
		}
		return nil
	default:
		fmt.Fprintln(out, usage)
		return nil
	}
}

func main() {
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)
	appConfig = config.Load()

	initProtocolClient()
	initRuntime()

	var wg sync.WaitGroup
	wg.Add(1)
	go listenEvents(os.Stdout, &wg)
	defer func() {
		notifier.Close()
		wg.Wait()
		appLogger.Info("Client closed")
	}()

	fmt.Println(usage)
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}
		if err := runCommand(ctx, os.Stdout, fields); err != nil {
			fmt.Printf("warning: %v\n", err)
		}
	}
}
