package logrus

import (
	"simple_cart/configs"
	"simple_cart/pkg/logger"

	"github.com/sirupsen/logrus"
)

func NewLogger(cfg *configs.Config) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	log.SetOutput(logger.NewWriter(cfg))
	if cfg.Env == "prod" {
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
