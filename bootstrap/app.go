package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/kbukum/assemblyai-mcp/component"
	"github.com/kbukum/assemblyai-mcp/logger"
)

// Process exit statuses.
const (
	ExitOK    = 0
	ExitError = 1
	ExitFault = 2
)

// Server is a foreground service driven by the App, such as the MCP stdio
// transport. Serve returns nil when its input ends or Close is called.
type Server interface {
	Serve(ctx context.Context) error
	Close(ctx context.Context) error
}

// App runs a process with a uniform lifecycle. The type parameter C is the
// config type; any struct embedding config.ServiceConfig satisfies Config.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(telemetry)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
//	    a.SetServer(mcp.NewServer(info, dispatcher.ServerTools()))
//	    return nil
//	})
//	err = app.Serve(ctx)
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger
	Summary    *Summary

	server          Server
	shutdownTimeout time.Duration
	exitGrace       time.Duration
	summaryOut      io.Writer
	signals         []os.Signal
	exit            func(int)

	onConfigure []func(ctx context.Context, app *App[C]) error
	onStart     []Hook
	onReady     []Hook
	onStop      []Hook
}

// NewApp applies defaults to cfg, validates it and initializes the logger.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(),
		shutdownTimeout: base.Server.ShutdownTimeout,
		exitGrace:       base.Server.ExitGrace,
		summaryOut:      os.Stderr,
		signals:         []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		exit:            os.Exit,
	}

	o := resolveOptions(opts)
	if o.shutdownTimeout != nil {
		app.shutdownTimeout = *o.shutdownTimeout
	}
	if o.exitGrace != nil {
		app.exitGrace = *o.exitGrace
	}
	if o.summaryOut != nil {
		app.summaryOut = o.summaryOut
	}
	if len(o.signals) > 0 {
		app.signals = o.signals
	}
	if o.exit != nil {
		app.exit = o.exit
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(&base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	app.Summary = NewSummary(base.Name, base.Version)
	return app, nil
}

// RegisterComponent adds a component to the application's registry.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// SetServer sets the server run by Serve. Call it from OnConfigure.
func (a *App[C]) SetServer(srv Server) {
	a.server = srv
}

// OnConfigure registers a callback for the configure phase, which runs once
// all components are started. Build the server and its handlers here.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// ReadyCheck verifies that all registered components are healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status != component.StatusHealthy {
			detail := h.Name + "=" + string(h.Status)
			if h.Message != "" {
				detail += "(" + h.Message + ")"
			}
			unhealthy = append(unhealthy, detail)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// Serve runs the full lifecycle around the configured server: start components, configure,
// serve until a shutdown signal, ctx cancellation or end of input, then
// drain it within the shutdown timeout, stop components and sleep the exit
// grace.
//
// A failed drain is logged but is not an error: the process is going away
// either way. Serve returns an error only when startup fails or the server
// stops on its own with one.
func (a *App[C]) Serve(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return err
	}
	srv := a.server
	if srv == nil {
		a.stop()
		return fmt.Errorf("no server configured")
	}

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, a.signals...)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(serveCtx) }()

	a.Logger.Info("Ready, serving requests")

	var serveErr error
	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal, graceful shutdown starting", logger.Fields(
			logger.FieldSignal, sig.String(),
		))
		a.drain(srv)
		<-errCh
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		a.drain(srv)
		<-errCh
	case serveErr = <-errCh:
		if serveErr != nil && ctx.Err() != nil && errors.Is(serveErr, ctx.Err()) {
			serveErr = nil
		}
		if serveErr == nil {
			a.Logger.Info("Input closed, shutting down")
		}
		a.drain(srv)
	}

	a.stop()
	if serveErr != nil {
		return fmt.Errorf("transport: %w", serveErr)
	}
	return nil
}

// drain closes srv and waits for in-flight work up to the shutdown timeout.
func (a *App[C]) drain(srv Server) {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	start := time.Now()
	if err := srv.Close(ctx); err != nil {
		a.Logger.Warn("Server shutdown incomplete", logger.MergeWithError(
			logger.DurationFields("shutdown", time.Since(start)), err))
		return
	}
	a.Logger.Info("Server shut down", logger.DurationFields("shutdown", time.Since(start)))
}

// RunTask executes a finite task with the full bootstrap lifecycle. The task
// context is canceled on a shutdown signal.
//
//	app.RunTask(ctx, func(ctx context.Context) error {
//	    return printTools(ctx, os.Stdout)
//	})
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, a.signals...)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("Received signal, canceling task", logger.Fields(
				logger.FieldSignal, sig.String(),
			))
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

// FaultHandler logs a recovered panic with its stack and exits with
// ExitFault. Pass it to servers that run work on their own goroutines.
func (a *App[C]) FaultHandler() func(recovered any, stack []byte) {
	return func(recovered any, stack []byte) {
		a.Logger.Error("Fatal fault, terminating", logger.Fields(
			"panic", fmt.Sprint(recovered),
			"stack", string(stack),
		))
		a.exit(ExitFault)
	}
}

// Recover is deferred at the top of main to route panics on the main
// goroutine through the fault handler.
func (a *App[C]) Recover() {
	if r := recover(); r != nil {
		a.FaultHandler()(r, debug.Stack())
	}
}

// startup performs the initialization sequence shared by Serve and RunTask.
func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()

	a.Logger.Info("Starting application", logger.Fields(
		"name", a.Name,
		"version", a.Version,
	))

	if err := a.initialize(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	if err := runHooks(ctx, a.onStart); err != nil {
		a.stop()
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	if err := a.configure(ctx); err != nil {
		a.stop()
		return fmt.Errorf("configuration failed: %w", err)
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.Fields(
			logger.FieldError, err.Error(),
		))
	}

	if err := runHooks(ctx, a.onReady); err != nil {
		a.stop()
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.DisplaySummary(ctx)
	return nil
}

// initialize starts all registered components.
func (a *App[C]) initialize(ctx context.Context) error {
	a.Logger.Debug("Starting components")
	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("failed to start components: %w", err)
	}
	a.Logger.Debug("All components started")
	return nil
}

// DisplaySummary writes the startup summary to the configured output.
func (a *App[C]) DisplaySummary(ctx context.Context) {
	a.Summary.Write(ctx, a.summaryOut, a.Components)
}

// configure runs registered configuration callbacks.
func (a *App[C]) configure(ctx context.Context) error {
	if len(a.onConfigure) == 0 {
		return nil
	}

	a.Logger.Debug("Running configuration callbacks", logger.Fields("count", len(a.onConfigure)))
	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown stops components. Use when managing your own lifecycle.
func (a *App[C]) Shutdown() error {
	return a.stop()
}

// stop runs OnStop hooks, stops components within the shutdown timeout and
// then sleeps the exit grace so buffered log output can flush.
func (a *App[C]) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	var shutdownErr error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", logger.Fields(logger.FieldError, err.Error()))
		shutdownErr = err
	}

	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	a.Logger.Info("Application shutdown complete")
	if a.exitGrace > 0 {
		time.Sleep(a.exitGrace)
	}
	return shutdownErr
}

// ExitCode maps the result of Serve or RunTask to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	return ExitError
}
