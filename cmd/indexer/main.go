package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	pkgdb "github.com/Skotchmaster/car_export/pkg/db"
	"github.com/Skotchmaster/car_export/pkg/logging"

	catalogcfg "github.com/Skotchmaster/car_export/internal/config"
	"github.com/Skotchmaster/car_export/internal/events"
	"github.com/Skotchmaster/car_export/internal/repo"
	"github.com/Skotchmaster/car_export/internal/search"
)

func main() {
	reindex := flag.Bool("reindex", false, "rebuild the search index from the database and exit")
	group := flag.String("group", "product-indexer", "kafka consumer group")
	flag.Parse()

	catalogcfg.LoadEnv(".env")
	cfg := catalogcfg.MustIndexer()

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat).With("service", "car-export-indexer")
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.IntoContext(ctx, logger)

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := pkgdb.Open(openCtx, cfg.DatabaseURL, cfg.DBOptions(logger))
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer pkgdb.Close(db)

	es, err := search.NewClient(ctx, search.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword, Index: cfg.ESIndex})
	if err != nil {
		log.Fatalf("elasticsearch: %v", err)
	}

	ix := &search.Indexer{Index: es, Products: &repo.GormRepo{DB: db}}

	if *reindex {
		n, err := ix.Reindex(ctx)
		if err != nil {
			log.Fatalf("reindex: %v", err)
		}
		logger.Info("reindex_done", "documents", n, "index", cfg.ESIndex)
		return
	}

	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("KAFKA_BROKERS is required unless -reindex is set")
	}
	if err := es.EnsureIndex(ctx); err != nil {
		log.Fatalf("ensure index: %v", err)
	}

	consumer := events.NewConsumer(cfg.KafkaBrokers, cfg.KafkaProductTopic, *group)
	defer consumer.Close()

	logger.Info("indexer_started", "topic", cfg.KafkaProductTopic, "group", *group, "index", cfg.ESIndex)
	err = consumer.Run(ctx, ix.Handle, func(m kafka.Message, err error) {
		logger.Warn("event_skipped", "reason", "undecodable message", "partition", m.Partition, "offset", m.Offset, "error", err)
	})
	if err != nil {
		logger.Error("indexer_stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("indexer_stopped")
}
