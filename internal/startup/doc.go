// Package startup provides build information and the lifecycle logging of
// the file-indexer driver.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
//
// # Lifecycle Logging
//
// The package provides logging functions for consistent output:
//   - [LogIndexStartup]: banner, system information and run configuration
//   - [PrepareOutput]: checks the catalog directory before a long run
//   - [LogMetricsServer]: metrics listener address and routes (debug level)
//   - [LogIndexFinished]: totals of a finished or cancelled run
//   - [LogShutdownInitiated]: graceful shutdown start
//   - [LogShutdownComplete]: shutdown completion
//
// # Example Usage
//
//	startup.LogIndexStartup(startup.IndexRun{Roots: roots, Output: out})
//	if err := startup.PrepareOutput(out); err != nil {
//	    startup.LogFatal("Cannot write catalog: %v", err)
//	}
//
//	// On SIGINT or SIGTERM...
//	startup.LogShutdownInitiated("interrupt")
//	startup.LogShutdownStep("Stopping indexer")
//	// ... stop and wait ...
//	startup.LogShutdownComplete()
package startup
