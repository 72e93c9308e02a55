package kafkaHandler

import (
	"encoding/json"
	"testing"
	"time"

	"simple_cart/internal/domain"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() (*Handler, *test.Hook) {
	log, hook := test.NewNullLogger()
	return NewHandler(log), hook
}

func TestHandleMessage(t *testing.T) {
	topic := "cart-events"
	partition := kafka.TopicPartition{Topic: &topic, Partition: 2, Offset: 17}

	t.Run("valid event is logged", func(t *testing.T) {
		handler, hook := newTestHandler()
		payload, err := json.Marshal(domain.CartEvent{
			Type:       domain.EventItemAdded,
			CartID:     "6f1c7a4e-6c1b-4b0a-9d7e-2f0a3c9a1b11",
			ItemID:     3,
			Quantity:   2,
			ItemCount:  1,
			CartTotal:  101.14,
			OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		})
		require.NoError(t, err)

		require.NoError(t, handler.HandleMessage(payload, partition, 1))

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.InfoLevel, entry.Level)
		assert.Equal(t, "Cart event", entry.Message)
		assert.Equal(t, domain.EventItemAdded, entry.Data["type"])
		assert.Equal(t, int64(3), entry.Data["item_id"])
		assert.Equal(t, int32(2), entry.Data["partition"])
	})

	tests := []struct {
		name    string
		payload string
	}{
		{"malformed json", `{"type":`},
		{"unknown field", `{"type":"item_added","cart_id":"c1","occurred_at":"2024-01-02T03:04:05Z","order_uid":"x"}`},
		{"unknown type", `{"type":"item_sold","cart_id":"c1","occurred_at":"2024-01-02T03:04:05Z"}`},
		{"missing cart id", `{"type":"cart_cleared","occurred_at":"2024-01-02T03:04:05Z"}`},
		{"negative quantity", `{"type":"quantity_updated","cart_id":"c1","quantity":-1,"occurred_at":"2024-01-02T03:04:05Z"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, hook := newTestHandler()

			err := handler.HandleMessage([]byte(tt.payload), partition, 1)

			assert.NoError(t, err, "bad messages are committed")
			require.Len(t, hook.Entries, 1)
			assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
		})
	}
}
