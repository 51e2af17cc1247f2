package main

import (
	"encoding/json"
	"net/http"

	"github.com/kataras/iris/v12"
	"github.com/streadway/amqp"

	"github.com/xor-shift/rngeasy/common"
)

const keptFailures = 64

func newApp(b *board) *iris.Application {
	app := iris.New()

	app.Get("/test", func(ctx iris.Context) {
		_, _ = ctx.Text("OK")
	})

	app.Get("/data", func(ctx iris.Context) {
		jsonData, err := json.Marshal(b.Snapshot())
		if err != nil {
			ctx.StatusCode(http.StatusInternalServerError)
			_, _ = ctx.Text("internal error: %s", err)
			return
		}

		ctx.ContentType("application/json")
		_, _ = ctx.Write(jsonData)
	})

	return app
}

func main() {
	cfg, err := common.LoadConfig()
	if err != nil {
		common.NewLogger("consumer_fe", "info").Fatal("loading config failed", "err", err)
	}

	logger := common.NewLogger("consumer_fe", cfg.LogLevel)
	b := newBoard(keptFailures)

	consumer, err := common.NewAMQPConsumer(cfg,
		"verdict_queue_fe",
		"verdict_consumer_fe",
		func(delivery amqp.Delivery) error {
			verdict, err := common.ParseAMQPVerdict(&delivery)
			if err != nil {
				return err
			}

			if !verdict.OK {
				logger.Warn("mismatch",
					"session", verdict.SessionID,
					"seq", verdict.Sequence,
					"op", verdict.Op,
					"reason", verdict.Reason)
			}

			b.Add(verdict)
			return nil
		},
		func(err error) {
			logger.Error("handling a verdict failed", "err", err)
		})
	if err != nil {
		logger.Fatal("creating the amqp consumer failed", "err", err)
	}
	defer consumer.Close()

	if err = consumer.Start(); err != nil {
		logger.Fatal("starting the amqp consumer failed", "err", err)
	}

	if err = newApp(b).Listen(cfg.ConsumerFEAddr); err != nil {
		logger.Error("listening failed", "err", err)
	}
}
