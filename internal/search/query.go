package search

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"file-indexer/internal/catalog"
)

// ErrInvalidPattern is returned when a regular expression query does not compile.
var ErrInvalidPattern = errors.New("invalid search pattern")

// Query is one search request.
type Query struct {
	Text          string
	SearchContent bool
	UseRegex      bool
	CaseSensitive bool
}

// Mode returns the metric label for the query.
func (q Query) Mode() string {
	if q.UseRegex {
		return "regex"
	}
	return "literal"
}

// Result holds the matches in catalog order and the scan duration.
type Result struct {
	Records []catalog.FileRecord
	Elapsed time.Duration
}

// ElapsedMillis returns the scan duration in whole milliseconds.
func (r Result) ElapsedMillis() int64 {
	return r.Elapsed.Milliseconds()
}

// matcher tests a single target string.
type matcher interface {
	Match(target string) bool
}

type literalMatcher struct {
	needle        string
	caseSensitive bool
}

func (m literalMatcher) Match(target string) bool {
	if m.caseSensitive {
		return strings.Contains(target, m.needle)
	}
	return strings.Contains(strings.ToLower(target), m.needle)
}

type regexMatcher struct {
	re *regexp.Regexp
}

func (m regexMatcher) Match(target string) bool {
	return m.re.MatchString(target)
}

// compile builds the matcher for q.
func compile(q Query) (matcher, error) {
	if !q.UseRegex {
		if q.CaseSensitive {
			return literalMatcher{needle: q.Text, caseSensitive: true}, nil
		}
		return literalMatcher{needle: strings.ToLower(q.Text)}, nil
	}

	pattern := q.Text
	if !q.CaseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return regexMatcher{re: re}, nil
}
