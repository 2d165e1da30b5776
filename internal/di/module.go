package di

import (
	"go.uber.org/fx"

	"github.com/expensio/expensio/internal/adapter/events"
	"github.com/expensio/expensio/internal/adapter/mail"
	"github.com/expensio/expensio/internal/app"
	"github.com/expensio/expensio/internal/config"
	"github.com/expensio/expensio/internal/logger"
	"github.com/expensio/expensio/internal/pkg/auth"
	"github.com/expensio/expensio/internal/server/http/handlers"
	"github.com/expensio/expensio/internal/server/http/router"
	"github.com/expensio/expensio/internal/storage/postgres"
	"github.com/expensio/expensio/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		mail.Module,
		events.Module,
		usecase.Module,
		fx.Provide(func(p events.Publisher) usecase.EventPublisher { return p }),
		fx.Provide(func(f *app.ExpenseFacade) handlers.ExpenseFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
