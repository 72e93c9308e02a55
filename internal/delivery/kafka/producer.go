package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"simple_cart/configs"
	"simple_cart/internal/domain"
	"simple_cart/pkg/prometheus"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/sirupsen/logrus"
)

// Producer publishes cart events keyed by cart id. Delivery is asynchronous; reports are
// drained in the background and only logged.
type Producer struct {
	producer     *kafka.Producer
	topic        string
	flushTimeout int
	log          *logrus.Logger
}

func NewProducer(cfg *configs.Config, log *logrus.Logger) (*Producer, error) {
	conf := &kafka.ConfigMap{
		"bootstrap.servers": cfg.KF.BootstrapServers,
	}
	p, err := kafka.NewProducer(conf)
	if err != nil {
		return nil, fmt.Errorf("error creating the producer - %w", err)
	}

	producer := &Producer{
		producer:     p,
		topic:        cfg.KF.Topic,
		flushTimeout: cfg.KF.FlushTimeout,
		log:          log,
	}
	go producer.deliveryReports()
	return producer, nil
}

func (p *Producer) Publish(_ context.Context, event domain.CartEvent) error {
	if err := event.Validate(); err != nil {
		prometheus.CartEventsPublished.WithLabelValues(string(event.Type), "invalid").Inc()
		return fmt.Errorf("invalid cart event: %w", err)
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshalling cart event: %w", err)
	}

	kafkaMsg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &p.topic,
			Partition: kafka.PartitionAny,
		},
		Value:  payload,
		Key:    []byte(event.CartID),
		Opaque: event.Type,
	}
	if err := p.producer.Produce(kafkaMsg, nil); err != nil {
		prometheus.CartEventsPublished.WithLabelValues(string(event.Type), "error").Inc()
		return fmt.Errorf("error sending message to kafka: %w", err)
	}
	return nil
}

func (p *Producer) deliveryReports() {
	for e := range p.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			eventType, _ := ev.Opaque.(domain.CartEventType)
			if ev.TopicPartition.Error != nil {
				prometheus.CartEventsPublished.WithLabelValues(string(eventType), "error").Inc()
				p.log.WithFields(logrus.Fields{
					"type":  eventType,
					"key":   string(ev.Key),
					"error": ev.TopicPartition.Error,
				}).Error("cart event delivery failed")
				continue
			}
			prometheus.CartEventsPublished.WithLabelValues(string(eventType), "ok").Inc()
			p.log.WithFields(logrus.Fields{
				"type":      eventType,
				"partition": ev.TopicPartition.Partition,
				"offset":    ev.TopicPartition.Offset,
			}).Debug("cart event delivered")
		case kafka.Error:
			p.log.Errorf("kafka producer error: %v", ev)
		}
	}
}

// Close waits up to the flush timeout for queued events and returns how many were left unsent.
func (p *Producer) Close() int {
	remaining := p.producer.Flush(p.flushTimeout)
	p.producer.Close()
	return remaining
}
