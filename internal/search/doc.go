/*
Package search evaluates queries against catalog snapshots.

A Query matches a record when its text is contained in the file name, or in
the first PreviewChars characters of the file's content when SearchContent is
set. With UseRegex the text is an RE2 pattern tested for a match anywhere in
the target; CaseSensitive off adds the (?i) flag. Literal queries compare
lower-cased strings.

# Content previews

The name is always tested first, so content is only read for records whose
name did not match. Previews are read on a bounded worker pool; the result
keeps catalog order regardless of completion order. A preview that cannot be
opened, read or decoded as text counts as empty and is recorded in the
file_indexer_search_content_previews_total metric.

# Asynchronous search

SearchAsync hands the outcome to a channel for callers on another goroutine.
Cancelling the context only abandons delivery.
*/
package search
