package di

import (
	"go.uber.org/fx"

	"github.com/nross83/storefront/internal/adapter/mailer"
	"github.com/nross83/storefront/internal/app"
	"github.com/nross83/storefront/internal/config"
	"github.com/nross83/storefront/internal/logger"
	"github.com/nross83/storefront/internal/pkg/auth"
	"github.com/nross83/storefront/internal/server/http/handlers"
	"github.com/nross83/storefront/internal/server/http/router"
	"github.com/nross83/storefront/internal/storage/postgres"
	"github.com/nross83/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		mailer.Module,
		usecase.Module,
		fx.Provide(func(f *app.StoreFacade) handlers.StoreFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
