// Package main provides the entry point for file-indexer.
//
// file-indexer walks directory trees into a catalog of file records, saves the
// catalog to an .idx file, and searches it by file name or by the first
// characters of each file's content.
//
// # Commands
//
//	file-indexer index [-f EXT]... [-x GLOB]... [--skip-hidden] [-o FILE] DIR...
//	file-indexer search [-c] [-r] [-s] [-n N] [-i FILE] QUERY
//	file-indexer stats [-i FILE]
//
// # Application Lifecycle
//
//  1. Flags are parsed and validated; LOG_LEVEL, METRICS_ADDR and
//     FILE_INDEXER_INDEX act as defaults.
//  2. Metrics are registered and filesystem retries are reported to them.
//  3. When --metrics-addr is set, /metrics and the health probes are served
//     and catalog gauges are refreshed in the background.
//  4. The command runs. During index, SIGINT or SIGTERM stops the walk and
//     the partial catalog is saved.
//  5. The metrics listener is shut down.
package main
