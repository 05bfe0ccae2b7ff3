package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/daipham1210/lintsift/internal/adapter/cli"
	"github.com/daipham1210/lintsift/internal/adapter/console"
	gitadapter "github.com/daipham1210/lintsift/internal/adapter/git"
	"github.com/daipham1210/lintsift/internal/adapter/logfile"
	"github.com/daipham1210/lintsift/internal/adapter/observability"
	"github.com/daipham1210/lintsift/internal/adapter/store/sqlite"
	"github.com/daipham1210/lintsift/internal/config"
	"github.com/daipham1210/lintsift/internal/usecase/filter"
	"github.com/daipham1210/lintsift/internal/version"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return
		}
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "lintsift",
		EnvPrefix:   "LINTSIFT",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	repoDir := cfg.Git.RepositoryDir
	if repoDir == "" {
		repoDir = "."
	}

	var pipelineLogger filter.Logger
	if cfg.Observability.Logging.Enabled {
		pipelineLogger = observability.NewLogger(
			observability.ParseLevel(cfg.Observability.Logging.Level),
			observability.ParseFormat(cfg.Observability.Logging.Format),
			os.Stderr,
		)
	}

	var historyStore *sqlite.Store
	if cfg.Store.Enabled {
		storeDir := filepath.Dir(cfg.Store.Path)
		if err := os.MkdirAll(storeDir, 0o755); err != nil {
			log.Printf("warning: failed to create store directory: %v", err)
		} else if historyStore, err = sqlite.NewStore(cfg.Store.Path); err != nil {
			log.Printf("warning: failed to initialize store: %v", err)
			historyStore = nil
		} else {
			defer historyStore.Close()
		}
	}

	orchestrator := filter.NewOrchestrator(filter.OrchestratorDeps{
		Git:               gitadapter.NewEngine(repoDir),
		Logs:              logfile.NewReader(),
		Renderer:          console.NewRenderer(os.Stdout, filter.IsOutputTerminal()),
		Store:             storeOrNil(historyStore),
		Logger:            pipelineLogger,
		DefaultLogPath:    cfg.Log.Path,
		DefaultSourceRoot: cfg.Filter.SourceRoot,
		RepositoryName:    filter.RepositoryName(repoDir),
	})

	root := cli.NewRootCommand(cli.Dependencies{
		Pipeline:          orchestrator,
		History:           historyOrNil(historyStore),
		DefaultLogPath:    cfg.Log.Path,
		DefaultSourceRoot: cfg.Filter.SourceRoot,
		Version:           version.Version(),
	})

	return root.ExecuteContext(ctx)
}

// storeOrNil keeps a typed-nil *sqlite.Store out of the interface field.
func storeOrNil(store *sqlite.Store) filter.HistoryStore {
	if store == nil {
		return nil
	}
	return store
}

func historyOrNil(store *sqlite.Store) cli.HistoryLister {
	if store == nil {
		return nil
	}
	return store
}

func defaultConfigPaths() []string {
	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "lintsift"))
	}
	return paths
}
