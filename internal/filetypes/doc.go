// Package filetypes provides extension handling shared by the indexer and
// the command-line driver.
//
// Two extension forms are used. Record extensions are what the catalog
// stores: lower-case without a leading dot ("txt", "" when absent). Filters
// are what users pass to an index job: lower-case with a leading dot
// (".txt"). NormalizeFilter accepts the usual spellings (TXT, .Txt, *.txt).
//
//	set := filetypes.NewFilterSet([]string{"TXT", "*.md"})
//	set.Allows(filetypes.ExtensionOf("Notes.TXT")) // true
//
// CategoryOf groups record extensions for catalog statistics.
package filetypes
