// Command cartproducer publishes random demo cart events for exercising cmd/cartevents.
package main

import (
	"context"
	"flag"
	"math/rand/v2"
	"sync"
	"time"

	"simple_cart/configs"
	"simple_cart/configs/loader/dotEnvLoader"
	k "simple_cart/internal/delivery/kafka"
	"simple_cart/internal/domain"
	"simple_cart/internal/repository/catalog"
	lr "simple_cart/pkg/logger/logrus"

	"github.com/google/uuid"
)

const (
	workers = 100
)

func main() {
	amountTask := flag.Int("events", 1000, "number of events to publish")
	numberOfCarts := flag.Int("carts", 20, "number of distinct cart ids")

	envLoader := dotEnvLoader.DotEnvLoader{}
	cfg := configs.MustLoad(envLoader)
	log := lr.NewLogger(cfg)
	if !flag.Parsed() {
		flag.Parse()
	}
	if *numberOfCarts < 1 {
		log.Fatal("-carts must be at least 1")
	}

	p, err := k.NewProducer(cfg, log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if unsent := p.Close(); unsent > 0 {
			log.Warnf("%d events left unsent", unsent)
		}
	}()

	cartIDs := generateKeys(*numberOfCarts)
	products := catalog.DemoProducts()

	sem := make(chan struct{}, workers)
	wg := &sync.WaitGroup{}
	wg.Add(*amountTask)

	for i := 0; i < *amountTask; i++ {
		sem <- struct{}{}
		go func() {
			defer func() {
				<-sem
				wg.Done()
			}()
			event := randomEvent(cartIDs[i%len(cartIDs)], products)
			if err := p.Publish(context.Background(), event); err != nil {
				log.Errorf("Error producing event %v: %v", event, err)
				return
			}
			log.Debugf("Producing event %v to Kafka", event)
		}()
	}
	wg.Wait()
}

func randomEvent(cartID string, products []domain.Product) domain.CartEvent {
	types := []domain.CartEventType{
		domain.EventItemAdded,
		domain.EventItemRemoved,
		domain.EventQuantityUpdated,
		domain.EventCartCleared,
	}
	product := products[rand.IntN(len(products))]
	quantity := int64(rand.IntN(5) + 1)

	event := domain.CartEvent{
		Type:       types[rand.IntN(len(types))],
		CartID:     cartID,
		ItemID:     product.ID,
		Quantity:   quantity,
		ItemCount:  1,
		CartTotal:  float64(quantity) * product.Price,
		OccurredAt: time.Now().UTC(),
	}
	if event.Type == domain.EventCartCleared {
		event.ItemID, event.Quantity, event.ItemCount, event.CartTotal = 0, 0, 0, 0
	}
	return event
}

func generateKeys(numberOfKeys int) []string {
	keys := make([]string, numberOfKeys)
	for i := 0; i < numberOfKeys; i++ {
		keys[i] = uuid.NewString()
	}
	return keys
}
