/*
Package finder ties the indexer, the search engine and the codec together
behind one object that owns the current catalog generation.

Every index job writes into a fresh catalog. When the job finishes, whether
it ran to completion or was stopped, that catalog replaces the current
generation before the caller's OnFinished runs, so a listener can search the
new generation immediately. Searches issued while a job runs see the previous
generation; SearchSnapshot over Handle.Snapshot() searches the partial one.

Load validates the whole file before swapping it in. A missing or corrupt
index leaves the current generation as it was.
*/
package finder
