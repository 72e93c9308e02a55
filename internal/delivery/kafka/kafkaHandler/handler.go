package kafkaHandler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"simple_cart/internal/domain"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/sirupsen/logrus"
)

// Handler writes every cart event it receives to the log.
type Handler struct {
	log *logrus.Logger
}

func NewHandler(log *logrus.Logger) *Handler {
	return &Handler{log: log}
}

// HandleMessage never fails on bad payloads: they are logged and committed so the
// consumer does not spin on them.
func (h *Handler) HandleMessage(message []byte, topic kafka.TopicPartition, cn int) error {
	event, err := parseEvent(message)
	if err != nil {
		h.log.WithFields(logrus.Fields{
			"consumer":  cn,
			"partition": topic.Partition,
			"offset":    topic.Offset,
		}).Warnf("Failed to parse cart event: %v", err)
		return nil
	}
	if err := event.Validate(); err != nil {
		h.log.WithFields(logrus.Fields{
			"consumer": cn,
			"cart_id":  event.CartID,
		}).Warnf("Invalid cart event: %v", err)
		return nil
	}

	h.log.WithFields(logrus.Fields{
		"consumer":   cn,
		"partition":  topic.Partition,
		"offset":     topic.Offset,
		"type":       event.Type,
		"cart_id":    event.CartID,
		"item_id":    event.ItemID,
		"quantity":   event.Quantity,
		"item_count": event.ItemCount,
		"cart_total": event.CartTotal,
	}).Info("Cart event")
	return nil
}

func parseEvent(message []byte) (*domain.CartEvent, error) {
	var event domain.CartEvent
	dec := json.NewDecoder(bytes.NewReader(message))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&event); err != nil {
		return nil, fmt.Errorf("decode cart event: %w", err)
	}
	return &event, nil
}
