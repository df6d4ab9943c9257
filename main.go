package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hmistry/gutensync/config"
	"github.com/hmistry/gutensync/fetch"
	"github.com/hmistry/gutensync/ingest"
	"github.com/hmistry/gutensync/log"
	"github.com/hmistry/gutensync/model"
	"github.com/hmistry/gutensync/scheduler"
	"github.com/hmistry/gutensync/server"
	"github.com/hmistry/gutensync/store"
	"github.com/hmistry/gutensync/store/db"
	"github.com/hmistry/gutensync/worker"
)

const (
	greetingBanner = `
 ██████  ██    ██ ████████ ███████ ███    ██ ███████ ██    ██ ███    ██  ██████
██       ██    ██    ██    ██      ████   ██ ██       ██  ██  ████   ██ ██
██   ███ ██    ██    ██    █████   ██ ██  ██ ███████   ████   ██ ██  ██ ██
██    ██ ██    ██    ██    ██      ██  ██ ██      ██    ██    ██  ██ ██ ██
 ██████   ██████     ██    ███████ ██   ████ ███████    ██    ██   ████  ██████
`
)

var (
	configFile string
	dataDir    string

	rootCmd = &cobra.Command{
		Use:   "gutensync",
		Short: "Gutensync keeps a local Project Gutenberg library in sync",
		Run: func(cmd *cobra.Command, args []string) {
			if err := run(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to the TOML config file")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "data directory")
}

func run() error {
	if configFile != "" {
		if _, err := config.ParseFile(configFile); err != nil {
			return err
		}
	}
	if dataDir != "" {
		if config.Opts == nil {
			config.GetDefaultOptions()
		}
		config.Opts.Data = dataDir
	}
	if _, err := config.GetConfig(); err != nil {
		return err
	}

	log.Logger = log.NewLogger()
	defer log.Logger.Sync()

	fmt.Print(greetingBanner)
	log.Info("Starting gutensync",
		zap.String("data", config.Opts.Data),
		zap.String("dsn", config.Opts.DSN))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d, err := db.NewDB(config.Opts.DSN)
	if err != nil {
		return err
	}
	defer d.Close()
	if err := d.Migrate(ctx); err != nil {
		return err
	}

	s := store.NewStore(d.DB)
	if err := s.Ping(); err != nil {
		return err
	}

	fetcher := fetch.NewClient(time.Duration(config.Opts.FetchTimeout) * time.Second)
	engine := ingest.NewEngine(s)
	service := ingest.NewService(engine, fetcher)

	pool := worker.NewPool(s, service, config.Opts.SyncWorkers)

	sched := scheduler.NewScheduler(s, pool)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	// An almost empty store means the seed catalog was never imported, queue
	// that before anything else so the first daily sync finds its books.
	go func() {
		needed, err := engine.NeedsInitialImport()
		if err != nil {
			log.Error("Failed to check for initial import", zap.Error(err))
			return
		}
		if !needed {
			return
		}
		log.Info("Store is nearly empty, queueing initial catalog import")
		job, err := s.AddSyncJob(model.SyncJob{Kind: model.SyncKindCatalog, Status: model.JobStatusPending})
		if err != nil {
			log.Error("Failed to queue initial catalog import", zap.Error(err))
			return
		}
		pool.Push(*job)
	}()

	httpServer, err := server.StartServer(ctx, s, pool)
	if err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
