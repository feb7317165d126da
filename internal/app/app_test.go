package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gofx "go.uber.org/fx"

	"github.com/nross83/storefront/internal/adapter/mailer"
	"github.com/nross83/storefront/internal/config"
	domainErrors "github.com/nross83/storefront/internal/domain/errors"
	testhelpers "github.com/nross83/storefront/internal/test"
	"github.com/nross83/storefront/internal/worker"
)

type mailClientStub struct{}

func (mailClientStub) Send(context.Context, mailer.Message) error { return nil }

func newTestDispatcher() *worker.MailDispatcher {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return worker.NewMailDispatcher(mailClientStub{}, 1, 1, logger)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewMailDispatcherUsesConfig(t *testing.T) {
	dispatcher := newMailDispatcher(dispatcherParams{
		Client: mailClientStub{},
		Config: &config.Config{MailQueueSize: 8, MailWorkers: 2},
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if dispatcher == nil {
		t.Fatal("expected dispatcher instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Dispatcher: newTestDispatcher(),
		Facade:     &StoreFacade{},
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	server := &http.Server{Addr: "bad addr"}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Dispatcher: newTestDispatcher(),
		Facade:     &StoreFacade{},
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestSeedAdmin(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	fixture := newFacade()
	cfg := &config.Config{AdminName: "Admin", AdminEmail: "admin@example.com", AdminPassword: "secret"}
	if err := seedAdmin(context.Background(), fixture.facade, cfg, logger); err != nil {
		t.Fatalf("seed admin returned error: %v", err)
	}
	if _, err := fixture.users.GetByEmail(context.Background(), "admin@example.com"); err != nil {
		t.Fatalf("admin not stored: %v", err)
	}

	// Second boot finds the account and does nothing.
	if err := seedAdmin(context.Background(), fixture.facade, cfg, logger); err != nil {
		t.Fatalf("repeated seed returned error: %v", err)
	}
	all, err := fixture.users.List(context.Background())
	if err != nil || len(all) != 1 {
		t.Fatalf("expected single admin, got %v err=%v", all, err)
	}
}

func TestSeedAdminSkippedWithoutPassword(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	fixture := newFacade()
	if err := seedAdmin(context.Background(), fixture.facade, &config.Config{AdminEmail: "admin@example.com"}, logger); err != nil {
		t.Fatalf("expected skip without error, got %v", err)
	}
	all, err := fixture.users.List(context.Background())
	if err != nil || len(all) != 0 {
		t.Fatalf("expected no accounts, got %v err=%v", all, err)
	}
}

func TestSeedAdminInvalidConfig(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	fixture := newFacade()
	err := seedAdmin(context.Background(), fixture.facade, &config.Config{AdminPassword: "secret"}, logger)
	if !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLifecycleRecorderAppend(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	recorder.Append(gofx.Hook{})
	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected hook to be appended")
	}
}

func TestShutdownerStub(t *testing.T) {
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	if err := shutdowner.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-shutdowner.Called:
	default:
		t.Fatal("expected shutdown notification")
	}
}
