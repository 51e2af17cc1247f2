package common

import (
	"bytes"
	"encoding/gob"
	"sync"

	"github.com/pkg/errors"
	"github.com/streadway/amqp"
)

// DeclareVerdictExchange declares the fanout exchange verdicts are published on.
func DeclareVerdictExchange(ch *amqp.Channel, exchange string) error {
	return ch.ExchangeDeclare(
		exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
}

// EncodeVerdict gob encodes a verdict for the wire.
func EncodeVerdict(v Verdict) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseAMQPVerdict decodes a delivery published by the ingest server.
func ParseAMQPVerdict(delivery *amqp.Delivery) (Verdict, error) {
	var verdict Verdict

	if err := gob.NewDecoder(bytes.NewBuffer(delivery.Body)).Decode(&verdict); err != nil {
		return Verdict{}, errors.Wrap(err, "decoding a verdict with gob")
	}

	return verdict, nil
}

type AMQPConsumer struct {
	amqpConn  *amqp.Connection
	amqpChan  *amqp.Channel
	amqpQueue amqp.Queue

	queueName    string
	consumerName string

	amqpConsumer <-chan amqp.Delivery
	callback     func(amqp.Delivery) error
	onError      func(error)
	wg           sync.WaitGroup
}

// NewAMQPConsumer binds an exclusive queue to the verdict exchange. Errors
// returned by callback are passed to onError, which may be nil.
func NewAMQPConsumer(cfg Config, queueName, consumerName string, callback func(amqp.Delivery) error, onError func(error)) (*AMQPConsumer, error) {
	var err error
	consumer := AMQPConsumer{
		callback: callback,
		onError:  onError,

		queueName:    queueName,
		consumerName: consumerName,
	}

	if consumer.amqpConn, err = amqp.Dial(cfg.AMQPURL); err != nil {
		return nil, errors.Wrap(err, "dialing amqp")
	}

	closeAll := func() {
		if consumer.amqpChan != nil {
			_ = consumer.amqpChan.Close()
		}
		_ = consumer.amqpConn.Close()
	}

	if consumer.amqpChan, err = consumer.amqpConn.Channel(); err != nil {
		closeAll()
		return nil, errors.Wrap(err, "opening an amqp channel")
	}

	if err = DeclareVerdictExchange(consumer.amqpChan, cfg.AMQPExchange); err != nil {
		closeAll()
		return nil, errors.Wrap(err, "declaring the verdict exchange")
	}

	if consumer.amqpQueue, err = consumer.amqpChan.QueueDeclare(
		queueName, // name
		false,     // durable
		false,     // delete when unused
		true,      // exclusive
		false,     // no-wait
		nil,       // arguments
	); err != nil {
		closeAll()
		return nil, errors.Wrap(err, "declaring an amqp queue")
	}

	if err = consumer.amqpChan.QueueBind(
		consumer.amqpQueue.Name, // queue name
		"",                      // routing key
		cfg.AMQPExchange,        // exchange
		false,
		nil,
	); err != nil {
		closeAll()
		return nil, errors.Wrap(err, "binding an amqp queue")
	}

	return &consumer, nil
}

func (c *AMQPConsumer) Start() error {
	var err error

	if c.amqpConsumer, err = c.amqpChan.Consume(
		c.amqpQueue.Name, // queue
		c.consumerName,   // consumer
		true,             // auto-ack
		false,            // exclusive
		false,            // no-local
		false,            // no-wait
		nil,              // args
	); err != nil {
		return err
	}

	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		for delivery := range c.amqpConsumer {
			if err := c.callback(delivery); err != nil && c.onError != nil {
				c.onError(err)
			}
		}
	}()

	return nil
}

func (c *AMQPConsumer) Stop() error {
	return c.amqpChan.Cancel(c.consumerName, false)
}

func (c *AMQPConsumer) Wait() {
	c.wg.Wait()
}

func (c *AMQPConsumer) Close() error {
	if err := c.amqpChan.Close(); err != nil {
		return err
	}

	return c.amqpConn.Close()
}
