package kafka

import (
	"errors"
	"fmt"
	"sync/atomic"

	"simple_cart/configs"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/sirupsen/logrus"
)

const (
	pollTimeoutMs = 100
)

type Handler interface {
	HandleMessage(message []byte, topic kafka.TopicPartition, cn int) error
}

type Consumer struct {
	consumer       *kafka.Consumer
	handler        Handler
	stop           atomic.Bool
	done           chan struct{}
	consumerNumber int
	log            *logrus.Logger
}

func NewConsumer(cfg *configs.Config, handler Handler, consumerNumber int, log *logrus.Logger) (*Consumer,
	error) {

	config := &kafka.ConfigMap{
		"bootstrap.servers":        cfg.KF.BootstrapServers,
		"group.id":                 cfg.KF.ConsumerGroup,
		"session.timeout.ms":       cfg.KF.SessionTimeoutMs,
		"enable.auto.offset.store": false,
		"enable.auto.commit":       true,
		"auto.commit.interval.ms":  cfg.KF.AutoCommitIntervalMs,
		"auto.offset.reset":        cfg.KF.AutoOffsetReset,
	}

	c, err := kafka.NewConsumer(config)
	if err != nil {
		return nil, fmt.Errorf("error creating consumer: %w", err)
	}
	if err = c.Subscribe(cfg.KF.Topic, nil); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("error subscribing to topic: %w", err)
	}
	return &Consumer{
		consumer:       c,
		handler:        handler,
		done:           make(chan struct{}),
		consumerNumber: consumerNumber,
		log:            log,
	}, nil
}

// Start polls until Stop is called. Offsets are stored only for handled messages.
func (c *Consumer) Start() {
	defer close(c.done)

	for !c.stop.Load() {
		kafkaMsg, err := c.consumer.ReadMessage(pollTimeoutMs)
		if err != nil {
			var kafkaErr kafka.Error
			if errors.As(err, &kafkaErr) && kafkaErr.Code() == kafka.ErrTimedOut {
				continue
			}
			c.log.Errorf("error reading message from kafka %v", err)
		}
		if kafkaMsg == nil {
			continue
		}
		if err := c.handler.HandleMessage(kafkaMsg.Value, kafkaMsg.TopicPartition, c.consumerNumber); err != nil {
			c.log.Errorf("error handling message from kafka %v", err)
			continue
		}
		if _, err = c.consumer.StoreMessage(kafkaMsg); err != nil {
			c.log.Errorf("error storing message to kafka %v", err)
			continue
		}
	}
}

func (c *Consumer) Stop() error {
	c.stop.Store(true)
	<-c.done

	if _, err := c.consumer.Commit(); err != nil {
		var kafkaErr kafka.Error
		if !errors.As(err, &kafkaErr) || kafkaErr.Code() != kafka.ErrNoOffset {
			_ = c.consumer.Close()
			return err
		}
	}
	c.log.WithField("consumer", c.consumerNumber).Info("Commited offset")
	return c.consumer.Close()
}
