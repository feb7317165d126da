package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/nross83/storefront/internal/adapter/mailer"
	"github.com/nross83/storefront/internal/config"
	"github.com/nross83/storefront/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewStoreFacade,
		newHTTPServer,
		newMailDispatcher,
		func(d *worker.MailDispatcher) Notifier { return d },
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type dispatcherParams struct {
	fx.In

	Client mailer.Client
	Config *config.Config
	Logger *slog.Logger
}

func newMailDispatcher(p dispatcherParams) *worker.MailDispatcher {
	return worker.NewMailDispatcher(
		p.Client,
		p.Config.MailQueueSize,
		p.Config.MailWorkers,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.MailDispatcher
	Facade     *StoreFacade
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := seedAdmin(ctx, p.Facade, p.Config, p.Logger); err != nil {
				return err
			}

			p.Logger.Info("starting storefront", slog.String("addr", p.Server.Addr))
			p.Dispatcher.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Dispatcher.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("storefront stopped")
			return nil
		},
	})
}

// seedAdmin guarantees the bootstrap admin account exists. It checks before
// creating, so repeated startups are no-ops.
func seedAdmin(ctx context.Context, facade *StoreFacade, cfg *config.Config, logger *slog.Logger) error {
	if cfg.AdminPassword == "" {
		logger.Warn("admin password not configured, skipping admin bootstrap")
		return nil
	}
	if err := facade.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}
	logger.Info("admin account ready", slog.String("email", cfg.AdminEmail))
	return nil
}
