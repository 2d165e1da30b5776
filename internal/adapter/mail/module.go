package mail

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/expensio/expensio/internal/config"
)

// Module exposes the mail sender implementation to fx graph.
var Module = fx.Provide(newSender)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) Sender {
	if p.Config.SMTP.Host == "" {
		return NewNopSender(p.Logger)
	}
	return NewSMTPSender(p.Config.SMTP, p.Logger)
}
