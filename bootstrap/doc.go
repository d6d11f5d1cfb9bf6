// Package bootstrap runs a process through a fixed lifecycle: load and
// validate typed config, initialize logging, start registered components,
// configure, serve, then shut down gracefully.
//
// Shutdown is triggered by SIGINT, SIGTERM, context cancellation or the
// server's input closing. The server is drained within
// server.shutdown_timeout, components are stopped in reverse order and the
// process sleeps server.exit_grace before returning.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    os.Exit(bootstrap.ExitError)
//	}
//	defer app.Recover()
//	os.Exit(bootstrap.ExitCode(app.Serve(ctx)))
//
// Panics on any goroutine are fatal: FaultHandler logs the stack and exits
// with ExitFault.
package bootstrap
