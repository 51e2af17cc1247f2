package main

import (
	"context"

	"github.com/xor-shift/rngeasy/common"
	"github.com/xor-shift/rngeasy/ingest"
	"github.com/xor-shift/rngeasy/store"
)

func main() {
	cfg, err := common.LoadConfig()
	if err != nil {
		common.NewLogger("server", "info").Fatal("loading config failed", "err", err)
	}

	logger := common.NewLogger("server", cfg.LogLevel)

	db, err := store.Open(cfg)
	if err != nil {
		logger.Fatal("opening the database failed", "err", err)
	}
	defer db.Close()

	if err = db.Migrate(context.Background()); err != nil {
		logger.Fatal("migrating the database failed", "err", err)
	}

	sink, err := ingest.NewAMQPSink(cfg)
	if err != nil {
		logger.Fatal("connecting to amqp failed", "err", err)
	}
	defer sink.Close()

	in := ingest.NewIngester(db, sink, logger, cfg.IngestMaxSkip)
	in.Start(cfg.IngestWorkers)
	defer in.Stop()

	app := newApp(in)

	if err := app.Listen(cfg.IngestAddr); err != nil {
		logger.Error("listening failed", "err", err)
	}
}
