package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/MThorpester/covid-us-etl/internal/backup"
	"github.com/MThorpester/covid-us-etl/internal/config"
	"github.com/MThorpester/covid-us-etl/internal/etl"
	"github.com/MThorpester/covid-us-etl/internal/loader"
	"github.com/MThorpester/covid-us-etl/internal/logging"
	"github.com/MThorpester/covid-us-etl/internal/source"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("[main] COVID ETL %s (%s)", etl.Version, etl.GitSHA)

	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	logging.Setup(cfg.Logging)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown handler
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		sig := <-ch
		log.Printf("[shutdown] received signal: %v", sig)
		cancel()
	}()

	src, err := source.NewFileSource(cfg.Source)
	if err != nil {
		log.Fatalf("[main] failed to create source: %v", err)
	}
	defer src.Close()

	store, err := backup.NewStore(cfg.Backup)
	if err != nil {
		log.Fatalf("[main] failed to create backup store: %v", err)
	}
	defer store.Close()

	db, err := loader.New(ctx, loader.Config{
		DSN:        cfg.Database.DSN,
		InitSchema: cfg.Database.InitSchema,
	})
	if err != nil {
		log.Fatalf("[main] failed to connect to database: %v", err)
	}
	defer db.Close()

	p := etl.New(cfg, src, store, db)

	if err := p.Run(ctx); err != nil {
		if ctx.Err() != nil {
			log.Printf("[main] shutdown before completion")
			os.Exit(1)
		}
		log.Fatalf("[main] pipeline failed: %v", err)
	}

	log.Println("[main] pipeline finished cleanly")
}
