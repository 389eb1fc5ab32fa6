package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"furniture-delivery/internal/config"
	"furniture-delivery/internal/logx"
	"furniture-delivery/internal/service/commands"
	"furniture-delivery/internal/service/delivery"
	"furniture-delivery/internal/transport/kafka"
)

type processorIn struct {
	dig.In
	Logger   logx.Logger
	Delivery *delivery.Service
	Total    *prometheus.CounterVec `name:"status_commands_total"`
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(in processorIn) *commands.Processor {
			return commands.NewProcessor(in.Delivery, in.Logger, in.Total)
		},
		func(cfg *config.Config, logger logx.Logger, p *commands.Processor) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, makeCommandsKafka(p))
		},
	)
}
