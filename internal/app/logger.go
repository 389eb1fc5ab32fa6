package app

import (
	"os"

	"furniture-delivery/internal/config"
	"furniture-delivery/internal/logx"
)

// NewLogger returns the JSON logger on stdout at the configured level.
func NewLogger(cfg *config.Config) logx.Logger {
	return logx.NewJSON(os.Stdout, cfg.LogLevel)
}
