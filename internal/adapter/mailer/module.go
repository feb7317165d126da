package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/nross83/storefront/internal/config"
)

// Module provides the notification client via fx.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	if p.Config.SMTPAddr == "" {
		return NewNoopClient(p.Logger), nil
	}
	return NewSMTPClient(p.Config.SMTPAddr, p.Config.SMTPFrom, p.Logger)
}
