// Package logging provides a simple leveled logging interface for the
// file indexer.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information (per-entry skips, worker lifecycle)
//   - INFO: General operational messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The log level is configured via the LOG_LEVEL environment variable (or
// DEBUG=true) and can be overridden at runtime with SetLevel. Components
// obtain a tagged logger with ForComponent.
package logging
