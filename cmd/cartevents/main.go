package main

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"simple_cart/configs"
	"simple_cart/configs/loader/dotEnvLoader"
	k "simple_cart/internal/delivery/kafka"
	"simple_cart/internal/delivery/kafka/kafkaHandler"
	lr "simple_cart/pkg/logger/logrus"
)

func main() {
	envLoader := dotEnvLoader.DotEnvLoader{}
	cfg := configs.MustLoad(envLoader)
	log := lr.NewLogger(cfg)

	handler := kafkaHandler.NewHandler(log)
	consumers := make([]*k.Consumer, 0, cfg.KF.Consumers)
	for i := 1; i <= cfg.KF.Consumers; i++ {
		c, err := k.NewConsumer(cfg, handler, i, log)
		if err != nil {
			log.Fatal(err)
		}
		consumers = append(consumers, c)
		go c.Start()
	}
	log.Infof("Started %d consumers on topic %s", len(consumers), cfg.KF.Topic)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	log.Info("Shutting down...")

	wg := &sync.WaitGroup{}
	wg.Add(len(consumers))
	for i, c := range consumers {
		go func() {
			defer wg.Done()
			err := c.Stop()
			log.Infof("Stopping consumer %d: %v", i+1, err)
		}()
	}
	wg.Wait()
}
