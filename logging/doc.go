// Package logging provides structured logging for the devportal library.
//
// This package wraps zap logger with convenience functions for the logging
// patterns used throughout the library. Because devportal is a library, the
// logger is silent unless explicitly enabled: either call Initialize with a
// level, or set the DEVPORTAL_LOG_LEVEL environment variable and call
// InitializeFromEnv.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Per-request traces and discarded response bodies
//   - Info: Request failures and notable state changes
//   - Warn: Non-fatal issues
//   - Error: Critical failures
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Device discovered",
//	    zap.String("hostname", "lumia950.local"),
//	    zap.String("ip", "192.168.1.100"),
//	)
//
// # Domain Helpers
//
// The package provides helpers for the library's common events:
//
//	logging.LogRequest(http.MethodGet, url, resp.StatusCode, nil)
//	logging.LogDecodeFailure(endpoint, len(body), err)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
