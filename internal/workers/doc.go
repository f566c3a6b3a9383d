/*
Package workers provides utilities for determining worker pool sizes in
containerized environments, plus an order-preserving parallel map.

# Overview

Inside a container the CPU budget may be limited by cgroup constraints while
runtime.NumCPU() still reports the host's cores. Go 1.19+ sets GOMAXPROCS from
the container limit, so worker counts here are derived from GOMAXPROCS.

# Sizing

	workers.ForCPU(0)  // one per available CPU
	workers.ForIO(16)  // two per available CPU, capped at 16

Set SEARCH_WORKERS to a positive integer to pin the count. The limit argument
still caps the override.

# Parallel map

Map fans items out to a fixed number of goroutines and returns results in
input order. The search engine uses it to read content previews while keeping
matches in catalog order:

	previews, err := workers.Map(ctx, workers.ForIO(16), records, readPreview)

When ctx is cancelled, no further items are dispatched and Map returns
ctx.Err() after in-flight calls finish.
*/
package workers
