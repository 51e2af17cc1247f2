package common

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Config is read from the environment, optionally seeded from .env files.
type Config struct {
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBAddress  string `mapstructure:"DB_ADDRESS"`
	DBName     string `mapstructure:"DB_NAME"`

	AMQPURL      string `mapstructure:"AMQP_URL"`
	AMQPExchange string `mapstructure:"AMQP_EXCHANGE"`

	IngestAddr     string `mapstructure:"INGEST_ADDR"`
	ConsumerFEAddr string `mapstructure:"CONSUMER_FE_ADDR"`
	// IngestMaxSkip caps how far ahead of a session's cursor a report may start.
	IngestMaxSkip uint64 `mapstructure:"INGEST_MAX_SKIP"`
	IngestWorkers uint   `mapstructure:"INGEST_WORKERS"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

func defaults() map[string]any {
	return map[string]any{
		"AMQP_EXCHANGE":    "verdicts",
		"INGEST_ADDR":      ":8080",
		"CONSUMER_FE_ADDR": ":8081",
		"INGEST_MAX_SKIP":  uint64(1 << 24),
		"INGEST_WORKERS":   uint(1),
		"LOG_LEVEL":        "info",
	}
}

// LoadConfig layers the defaults, the given dotenv files (".env" if none are
// given) and the process environment, later layers winning. Missing dotenv
// files are skipped.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	values := defaults()

	for _, file := range files {
		dotenv, err := godotenv.Read(file)
		if err != nil {
			if os.IsNotExist(errors.Cause(err)) {
				continue
			}
			return Config{}, errors.Wrapf(err, "loading dotenv %s", file)
		}

		for k, v := range dotenv {
			values[k] = v
		}
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			values[k] = v
		}
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}

	if err = decoder.Decode(values); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}

	if cfg.IngestWorkers == 0 {
		return Config{}, errors.New("INGEST_WORKERS must be at least 1")
	}

	return cfg, nil
}
