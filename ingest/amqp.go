package ingest

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/streadway/amqp"

	"github.com/xor-shift/rngeasy/common"
)

// AMQPSink publishes gob encoded verdicts to a fanout exchange.
type AMQPSink struct {
	mu sync.Mutex

	amqpConn *amqp.Connection
	amqpChan *amqp.Channel
	exchange string
}

func NewAMQPSink(cfg common.Config) (*AMQPSink, error) {
	var err error
	sink := &AMQPSink{exchange: cfg.AMQPExchange}

	if sink.amqpConn, err = amqp.Dial(cfg.AMQPURL); err != nil {
		return nil, errors.Wrap(err, "dialing amqp")
	}

	if sink.amqpChan, err = sink.amqpConn.Channel(); err != nil {
		_ = sink.amqpConn.Close()
		return nil, errors.Wrap(err, "establishing an amqp channel")
	}

	if err = common.DeclareVerdictExchange(sink.amqpChan, sink.exchange); err != nil {
		_ = sink.amqpChan.Close()
		_ = sink.amqpConn.Close()
		return nil, errors.Wrap(err, "declaring an amqp exchange")
	}

	return sink, nil
}

func (sink *AMQPSink) Publish(verdict common.Verdict) error {
	body, err := common.EncodeVerdict(verdict)
	if err != nil {
		return err
	}

	// channels are not safe for concurrent publishing
	sink.mu.Lock()
	defer sink.mu.Unlock()

	return sink.amqpChan.Publish(
		sink.exchange,
		"",
		false,
		false,
		amqp.Publishing{
			ContentType: "application/octet-stream",
			Body:        body,
		})
}

func (sink *AMQPSink) Close() error {
	if err := sink.amqpChan.Close(); err != nil {
		return err
	}
	return sink.amqpConn.Close()
}
