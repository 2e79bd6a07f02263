package main

import (
	"log/slog"

	"courtpub/internal/notification/dispatch"
	"courtpub/internal/notification/gateway"
	"courtpub/internal/notification/metrics"
	"courtpub/internal/platform/config"
	"courtpub/pkg/platform/circuit"
)

// notificationGateways registers every provider the configuration has
// credentials for. The log provider is always available.
func notificationGateways(cfg config.NotifyConfig, logger *slog.Logger) (gateway.Registry, error) {
	gateways := gateway.Registry{"log": gateway.NewLog(logger)}

	if cfg.NotifyAPIKey != "" {
		notify, err := gateway.NewNotify(cfg.NotifyBaseURL, cfg.NotifyAPIKey)
		if err != nil {
			return nil, err
		}
		gateways["notify"] = notify
	}

	if cfg.MailgunDomain != "" {
		mg, err := gateway.NewMailgun(gateway.MailgunConfig{
			Domain:  cfg.MailgunDomain,
			APIKey:  cfg.MailgunAPIKey,
			Sender:  cfg.MailgunSender,
			APIBase: cfg.MailgunAPIBase,
		})
		if err != nil {
			return nil, err
		}
		gateways["mailgun"] = mg
	}
	return gateways, nil
}

func newDispatcher(cfg config.NotifyConfig, logger *slog.Logger, m *metrics.Metrics) (*dispatch.Dispatcher, error) {
	gateways, err := notificationGateways(cfg, logger)
	if err != nil {
		return nil, err
	}
	gw, err := gateways.Get(cfg.Provider)
	if err != nil {
		return nil, err
	}

	breaker := gateway.NewBreaker(cfg.Provider, gw,
		circuit.WithFailureThreshold(cfg.BreakerFailures),
		circuit.WithOpenTimeout(cfg.BreakerOpenTimeout),
		circuit.WithStateChange(func(name string, from, to circuit.State) {
			logger.Warn("notification gateway breaker state changed",
				"gateway", name,
				"from", from.String(),
				"to", to.String(),
			)
			m.SetBreakerOpen(name, to == circuit.StateOpen)
		}),
	)

	logger.Info("notification gateway selected", "provider", cfg.Provider)
	return dispatch.New(breaker,
		dispatch.WithRetries(cfg.RetryAttempts),
		dispatch.WithInitialDelay(cfg.RetryDelay),
		dispatch.WithLogger(logger),
		dispatch.WithMetrics(m),
	), nil
}
