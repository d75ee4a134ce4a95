package adapter

import (
	"fmt"

	"TennisGraph/internal/config"
	"TennisGraph/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// NewDataSource builds the provider named by cfg.Source
func NewDataSource(cfg *config.DataConfig, logger *logrus.Logger) (interfaces.DataSource, error) {
	factory, ok := GetFactory(cfg.Source)
	if !ok {
		return nil, fmt.Errorf("data source %q is not registered (registered: %v)", cfg.Source, ListFactories())
	}
	src := factory(cfg, logger)
	if src == nil {
		return nil, fmt.Errorf("data source %q factory returned nil", cfg.Source)
	}
	if src.GetName() != cfg.Source {
		logger.WithFields(logrus.Fields{
			"config_source":  cfg.Source,
			"adapter_source": src.GetName(),
		}).Warn("data source name differs from config")
	}
	logger.WithFields(logrus.Fields{
		"source": src.GetName(),
		"dir":    cfg.Dir,
	}).Info("data source initialized")
	return src, nil
}
