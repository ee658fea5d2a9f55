package mail

import (
	"context"
	"log/slog"

	"smarthr/config"
	"smarthr/internal/domain/service"

	"go.uber.org/fx"
)

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Metrics   service.AuthMetrics
}

// New wires the SMTP or logging mailer behind a dispatcher drained on shutdown.
func New(params Params) service.MailDispatcher {
	cfg := params.Config.Mail

	var mailer service.Mailer
	if cfg.Enabled {
		mailer = NewSMTPMailer(cfg)
	} else {
		mailer = NewLogMailer(params.Logger)
	}

	d := NewDispatcher(mailer, params.Logger, params.Metrics, cfg.BufferSize, cfg.SendTimeout)
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			d.Close()

			return nil
		},
	})

	return d
}
