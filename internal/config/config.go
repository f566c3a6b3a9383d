// Package config parses the command line of the file-indexer driver.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"

	"file-indexer/internal/codec"
	"file-indexer/internal/filesystem"
	"file-indexer/internal/filetypes"
	"file-indexer/internal/logging"
	"file-indexer/internal/startup"
)

// DefaultIndexPath is used when neither --index nor FILE_INDEXER_INDEX is set.
const DefaultIndexPath = "catalog.idx"

// ErrNoCommand is returned when no subcommand was given.
var ErrNoCommand = errors.New("a command is required: index, search or stats")

// IndexCmd walks directories and saves the resulting catalog.
type IndexCmd struct {
	Roots      []string `arg:"positional,required" placeholder:"DIR" help:"directories to index"`
	Filters    []string `arg:"-f,--filter,separate" placeholder:"EXT" help:"only index files with this extension (repeatable; txt, .txt and *.txt are equivalent)"`
	Exclude    []string `arg:"-x,--exclude,separate" placeholder:"GLOB" help:"skip paths matching this pattern relative to the root, e.g. **/node_modules"`
	SkipHidden bool     `arg:"--skip-hidden" help:"skip files and directories whose names start with a dot"`
	Output     string   `arg:"-o,--output,env:FILE_INDEXER_INDEX" placeholder:"FILE" help:"where to save the catalog"`
}

// SearchCmd queries a saved catalog.
type SearchCmd struct {
	Text          string `arg:"positional,required" placeholder:"QUERY" help:"text or regular expression to look for"`
	Content       bool   `arg:"-c,--content" help:"also search the first characters of each file"`
	Regex         bool   `arg:"-r,--regex" help:"treat QUERY as a regular expression"`
	CaseSensitive bool   `arg:"-s,--case-sensitive" help:"match case exactly"`
	Limit         int    `arg:"-n,--limit" help:"print at most this many matches (0 = all)"`
	Index         string `arg:"-i,--index,env:FILE_INDEXER_INDEX" placeholder:"FILE" help:"catalog to search"`
}

// StatsCmd prints a summary of a saved catalog.
type StatsCmd struct {
	Index string `arg:"-i,--index,env:FILE_INDEXER_INDEX" placeholder:"FILE" help:"catalog to describe"`
}

// Args holds the parsed command line.
type Args struct {
	Index  *IndexCmd  `arg:"subcommand:index" help:"index directories into a catalog file"`
	Search *SearchCmd `arg:"subcommand:search" help:"search a catalog file"`
	Stats  *StatsCmd  `arg:"subcommand:stats" help:"describe a catalog file"`

	LogLevel    string `arg:"--log-level,env:LOG_LEVEL" placeholder:"LEVEL" help:"debug, info, warn or error"`
	MetricsAddr string `arg:"--metrics-addr,env:METRICS_ADDR" placeholder:"ADDR" help:"serve /metrics and /health on this address, e.g. :9090"`
	NoRetry     bool   `arg:"--no-retry,env:FILE_INDEXER_NO_RETRY" help:"do not retry filesystem calls that fail with a stale NFS handle"`

	// Level is LogLevel parsed by PostProcess.
	Level logging.LogLevel `arg:"-"`
}

// Description returns the program description for go-arg
func (Args) Description() string {
	return "Indexes directory trees into a catalog file and searches it by name or content"
}

// Version returns the version string for go-arg
func (Args) Version() string {
	return "file-indexer " + startup.Version
}

// Command returns the name of the selected subcommand.
func (a *Args) Command() string {
	switch {
	case a.Index != nil:
		return "index"
	case a.Search != nil:
		return "search"
	case a.Stats != nil:
		return "stats"
	default:
		return ""
	}
}

// Retry returns the filesystem retry policy selected by --no-retry.
func (a *Args) Retry() filesystem.RetryConfig {
	if a.NoRetry {
		return filesystem.NoRetry()
	}
	return filesystem.DefaultRetryConfig()
}

// Parse parses args (without the program name). It returns arg.ErrHelp or
// arg.ErrVersion when those flags were given.
func Parse(args []string) (*Args, error) {
	cfg := &Args{}
	p, err := arg.NewParser(arg.Config{Program: "file-indexer"}, cfg)
	if err != nil {
		return nil, err
	}
	if err := p.Parse(args); err != nil {
		return nil, err
	}
	return PostProcess(cfg)
}

// ParseFlags parses os.Args and exits with usage on error.
func ParseFlags() *Args {
	cfg := &Args{}
	p := arg.MustParse(cfg)

	if _, err := PostProcess(cfg); err != nil {
		p.Fail(err.Error())
	}
	return cfg
}

// PostProcess validates a parsed command line and fills in derived values:
// filters are normalized and catalog paths get the .idx suffix.
func PostProcess(cfg *Args) (*Args, error) {
	cfg.Level = logging.GetLevel()
	if cfg.LogLevel != "" {
		level, ok := logging.ParseLevel(cfg.LogLevel)
		if !ok {
			return nil, fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", cfg.LogLevel)
		}
		cfg.Level = level
	}

	switch {
	case cfg.Index != nil:
		cmd := cfg.Index
		cmd.Filters = filetypes.NormalizeFilters(cmd.Filters)
		cmd.Output = indexPath(cmd.Output)
		for _, root := range cmd.Roots {
			warnIfNotDir(root)
		}
	case cfg.Search != nil:
		if cfg.Search.Limit < 0 {
			return nil, fmt.Errorf("limit must not be negative: %d", cfg.Search.Limit)
		}
		cfg.Search.Index = indexPath(cfg.Search.Index)
	case cfg.Stats != nil:
		cfg.Stats.Index = indexPath(cfg.Stats.Index)
	default:
		return nil, ErrNoCommand
	}

	return cfg, nil
}

func indexPath(path string) string {
	if path == "" {
		return DefaultIndexPath
	}
	return codec.IndexPath(path)
}

// warnIfNotDir logs roots that cannot be walked. They are not fatal: the
// indexer skips them and indexes the rest.
func warnIfNotDir(root string) {
	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		logging.Warn("Root does not exist: %s", root)
	case err != nil:
		logging.Warn("Cannot access root %s: %v", root, err)
	case !info.IsDir():
		logging.Warn("Root is not a directory: %s", root)
	}
}
