// Package zaphandler lets a *zap.Logger write through handler.Handler.
//
//	h, _ := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{})
//	log := zap.New(zaphandler.NewCore(h, zapcore.DebugLevel), zap.AddCaller())
//
// Zap fields become extra fields; caller and stack are carried over.
package zaphandler
