package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tunitour/internal/infra"
	"tunitour/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *infra.Config, log *zap.Logger) services.IMailService {
	if !cfg.SMTP.Enabled() {
		log.Info("SMTP not configured, mails are logged only")
		return services.NewLogMailService(log.Named("mail"))
	}

	return services.NewSMTPMailService(services.SMTPConfig{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		From:       cfg.SMTP.From,
		FromName:   "TuniTour",
		UseSSL:     cfg.SMTP.Port == 465,
		AppName:    "TuniTour",
		AppBaseURL: cfg.PublicBaseURL,
	}, log.Named("mail"))
}
