// Package logger provides structured, leveled logging built on Uber's Zap.
//
// The wrapper exposes plain methods (Info, Debug, Warn, Error) and
// context-aware variants (InfoWithContext etc.) that enrich entries with the
// active trace and span IDs when tracing is enabled in the configuration.
//
// Direct usage:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "wireprobe",
//	})
//	log.Info("started", nil, nil)
//
// Fx usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Provide(func() logger.Config { return loadLoggerConfig() }),
//	)
//
// Other packages in this module accept a small local Logger interface that
// this type satisfies, so the logger is always optional for them.
package logger
