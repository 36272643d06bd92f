// Package httpserver runs an http.Handler with production timeouts and
// graceful shutdown, and provides liveness and readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Run blocks until ctx is cancelled, then shuts the server down within the
// configured ShutdownTimeout. Errors wrap ErrStart or ErrShutdown.
package httpserver
