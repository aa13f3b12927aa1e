// Package mlog is a structured logging facade. Callers obtain named,
// configured loggers, synchronous or asynchronous, that emit entries to a
// console stream, a text file, or a newline-delimited JSON file.
//
// A Registry caches loggers by name so repeated requests return the same
// instance:
//
//	reg := mlog.NewRegistry()
//	cfg, err := mlog.NewConfig("payments",
//		mlog.WithLevel(mlog.LevelWarning),
//		mlog.WithTarget(mlog.TargetJSON),
//		mlog.WithDirectory("/var/log/app"),
//		mlog.WithFilename("payments.json"),
//	)
//	if err != nil {
//		// invalid configuration
//	}
//	l, err := reg.GetOrCreate(cfg)
//	if err != nil {
//		// sink construction failed
//	}
//	l.Error().Str("order", "o-17").Msgf("charge failed after %d tries", 3)
//
// Configuration can also come from LOGGER_* environment variables via
// ConfigFromEnv. See Config for the variable names and defaults.
package mlog
