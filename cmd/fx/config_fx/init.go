package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tunitour/internal/infra"
)

var Module = fx.Provide(
	provideConfig, provideLogger)

func provideConfig() *infra.Config {
	return infra.LoadConfig()
}

func provideLogger(cfg *infra.Config) (*zap.Logger, error) {
	return infra.NewLogger(cfg)
}
