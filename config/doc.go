// Package config loads logger settings.
//
// Settings are layered: built in defaults, then an optional TOML file,
// then a dotenv file, then the process environment. Environment keys
// carry the LOGGER_ prefix and are matched case-insensitively; nested
// traceback settings use LOGGER_TRACEBACK_ and LOGGER_TRACEBACK_LOCALS_.
//
//	cfg, err := config.Load(config.WithFile("logger.toml"))
//	if err != nil {
//		return err
//	}
//
// Every failure, including an invalid style override or color system,
// is returned from Load; a logger is never built from a bad config.
package config
