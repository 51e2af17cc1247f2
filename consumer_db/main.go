package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/streadway/amqp"

	"github.com/xor-shift/rngeasy/common"
	"github.com/xor-shift/rngeasy/store"
)

const insertTimeout = 10 * time.Second

func main() {
	cfg, err := common.LoadConfig()
	if err != nil {
		common.NewLogger("consumer_db", "info").Fatal("loading config failed", "err", err)
	}

	logger := common.NewLogger("consumer_db", cfg.LogLevel)

	db, err := store.Open(cfg)
	if err != nil {
		logger.Fatal("opening the database failed", "err", err)
	}
	defer db.Close()

	if err = db.Migrate(context.Background()); err != nil {
		logger.Fatal("migrating the database failed", "err", err)
	}

	consumer, err := common.NewAMQPConsumer(cfg,
		"verdict_queue_db",
		"verdict_consumer_db",
		func(delivery amqp.Delivery) error {
			verdict, err := common.ParseAMQPVerdict(&delivery)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
			defer cancel()

			return db.InsertVerdicts(ctx, []common.Verdict{verdict})
		},
		func(err error) {
			logger.Error("storing a verdict failed", "err", err)
		})
	if err != nil {
		logger.Fatal("creating the amqp consumer failed", "err", err)
	}
	defer consumer.Close()

	if err = consumer.Start(); err != nil {
		logger.Fatal("starting the amqp consumer failed", "err", err)
	}

	logger.Info("consuming verdicts", "exchange", cfg.AMQPExchange)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	if err = consumer.Stop(); err != nil {
		logger.Warn("cancelling the amqp consumer failed", "err", err)
	}
	consumer.Wait()
}
