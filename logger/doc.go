// Package logger is the public API of tablelog. Most users only need to
// import this package.
//
// New builds the standard wiring from a config.Config: a console handler
// rendering table rows, plus debug/debug.log and error/error.log under
// the configured log directory, each rotated by size:
//
//	cfg, err := config.Load(config.WithFile("tablelog.toml"))
//	if err != nil {
//	    return err
//	}
//	log, err := logger.New(cfg)
//
// Setup registers such a logger as the process-wide instance; repeated
// calls return the first one. The package-level functions Info, Success,
// Exception, Debugf, etc. delegate to Default, which sets the instance
// up from config.Load on first use:
//
//	logger.Success("migrated", logger.Int("tables", 12))
//
// For custom configuration, use the Builder:
//
//	log := logger.NewBuilder().
//	    WithHandler(myHandler).
//	    WithLevel(logger.DebugLevel).
//	    WithCaller(true).
//	    Build()
//
// Call options ride along with fields: ExcInfo(err) attaches exception
// info, StackInfo() adds the call stack, and StackLevel(n) attributes the
// record to a frame further up. Helpers in this package, the handler
// packages and the standard log package are never reported as the
// caller.
//
// Name and level live in one immutable value swapped atomically, so
// SetLevel and Scoped never expose a half-updated pair. Handler failures
// do not reach the caller; they go to the logger's ErrorReporter, which
// by default prints a "--- Logging error ---" block to stderr.
//
// Level checks happen before any allocation, so filtered-out messages
// cost only an atomic load and a comparison.
package logger
