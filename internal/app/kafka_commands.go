package app

import (
	"context"

	"furniture-delivery/internal/service/commands"
	"furniture-delivery/internal/transport/kafka"
)

type commandHandler interface {
	Handle(ctx context.Context, c commands.Command) error
}

// makeCommandsKafka adapts the processor to the consumer: permanent failures
// are marked and skipped, everything else is redelivered.
func makeCommandsKafka(h commandHandler) kafka.HandleFunc {
	return func(ctx context.Context, c commands.Command) error {
		err := h.Handle(ctx, c)
		if err != nil && commands.IsPermanent(err) {
			return kafka.Permanent(err)
		}
		return err
	}
}
