package filetypes

import (
	"path/filepath"
	"sort"
	"strings"
)

// Category is a coarse grouping of extensions used for catalog statistics.
type Category string

const (
	// CategoryDocument covers office documents and PDFs.
	CategoryDocument Category = "document"
	// CategoryText covers plain text, markup and source code.
	CategoryText Category = "text"
	// CategoryImage covers raster and vector images.
	CategoryImage Category = "image"
	// CategoryVideo covers video containers.
	CategoryVideo Category = "video"
	// CategoryAudio covers audio formats.
	CategoryAudio Category = "audio"
	// CategoryArchive covers compressed archives.
	CategoryArchive Category = "archive"
	// CategoryOther represents an unknown or missing extension.
	CategoryOther Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryDocument, CategoryText, CategoryImage, CategoryVideo,
	CategoryAudio, CategoryArchive, CategoryOther,
}

// categoryByExtension maps a record extension (lower-case, no dot) to its category.
var categoryByExtension = map[string]Category{
	// Documents
	"pdf": CategoryDocument, "doc": CategoryDocument, "docx": CategoryDocument,
	"xls": CategoryDocument, "xlsx": CategoryDocument, "ppt": CategoryDocument,
	"pptx": CategoryDocument, "odt": CategoryDocument, "ods": CategoryDocument,
	"rtf": CategoryDocument,

	// Text
	"txt": CategoryText, "md": CategoryText, "csv": CategoryText, "log": CategoryText,
	"json": CategoryText, "xml": CategoryText, "yaml": CategoryText, "yml": CategoryText,
	"ini": CategoryText, "html": CategoryText, "htm": CategoryText, "go": CategoryText,
	"c": CategoryText, "h": CategoryText, "cpp": CategoryText, "py": CategoryText,
	"js": CategoryText, "sh": CategoryText,

	// Images
	"jpg": CategoryImage, "jpeg": CategoryImage, "png": CategoryImage, "gif": CategoryImage,
	"bmp": CategoryImage, "webp": CategoryImage, "svg": CategoryImage, "ico": CategoryImage,
	"tiff": CategoryImage, "tif": CategoryImage, "heic": CategoryImage, "heif": CategoryImage,

	// Videos
	"mp4": CategoryVideo, "mkv": CategoryVideo, "avi": CategoryVideo, "mov": CategoryVideo,
	"wmv": CategoryVideo, "flv": CategoryVideo, "webm": CategoryVideo, "m4v": CategoryVideo,
	"mpeg": CategoryVideo, "mpg": CategoryVideo, "3gp": CategoryVideo,

	// Audio
	"mp3": CategoryAudio, "wav": CategoryAudio, "flac": CategoryAudio, "ogg": CategoryAudio,
	"m4a": CategoryAudio, "aac": CategoryAudio,

	// Archives
	"zip": CategoryArchive, "tar": CategoryArchive, "gz": CategoryArchive, "tgz": CategoryArchive,
	"bz2": CategoryArchive, "xz": CategoryArchive, "7z": CategoryArchive, "rar": CategoryArchive,
}

// CategoryOf returns the Category for a record extension (lower-case, no
// leading dot). Returns CategoryOther if the extension is not recognized.
func CategoryOf(ext string) Category {
	if c, ok := categoryByExtension[ext]; ok {
		return c
	}
	return CategoryOther
}

// ExtensionOf returns the lower-cased extension of name without its leading
// dot, or "" when there is none.
func ExtensionOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// NormalizeFilter converts user input such as "TXT", ".Txt" or "*.txt" into
// the canonical filter form ".txt". It returns "" for blank input.
func NormalizeFilter(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "*")
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return ""
	}
	return "." + strings.ToLower(s)
}

// NormalizeFilters normalizes every filter, drops blanks and duplicates, and
// returns the result sorted.
func NormalizeFilters(filters []string) []string {
	seen := make(map[string]struct{}, len(filters))
	out := make([]string, 0, len(filters))
	for _, f := range filters {
		n := NormalizeFilter(f)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// FilterSet is a set of normalized filters. The zero value allows everything.
type FilterSet struct {
	allowed map[string]struct{}
}

// NewFilterSet builds a FilterSet from raw filter strings.
func NewFilterSet(filters []string) FilterSet {
	normalized := NormalizeFilters(filters)
	if len(normalized) == 0 {
		return FilterSet{}
	}
	allowed := make(map[string]struct{}, len(normalized))
	for _, f := range normalized {
		allowed[f] = struct{}{}
	}
	return FilterSet{allowed: allowed}
}

// Empty reports whether the set applies no filtering.
func (s FilterSet) Empty() bool {
	return len(s.allowed) == 0
}

// Allows reports whether a record extension (lower-case, no dot) passes.
// Files without an extension never pass a non-empty filter.
func (s FilterSet) Allows(ext string) bool {
	if s.Empty() {
		return true
	}
	if ext == "" {
		return false
	}
	_, ok := s.allowed["."+strings.ToLower(ext)]
	return ok
}
