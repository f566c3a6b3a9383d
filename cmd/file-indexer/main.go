package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"file-indexer/internal/config"
	"file-indexer/internal/filesystem"
	"file-indexer/internal/filetypes"
	"file-indexer/internal/finder"
	"file-indexer/internal/handlers"
	"file-indexer/internal/indexer"
	"file-indexer/internal/logging"
	"file-indexer/internal/metrics"
	"file-indexer/internal/search"
	"file-indexer/internal/startup"
)

// How often catalog gauges are refreshed while the metrics listener runs
const collectInterval = 15 * time.Second

func main() {
	args := config.ParseFlags()
	logging.SetLevel(args.Level)

	metrics.InitializeMetrics()
	metrics.AppInfo.WithLabelValues(startup.Version, startup.Commit, startup.GoVersion).Set(1)
	filesystem.SetObserver(metrics.NewFilesystemObserver())

	skipHidden := args.Index != nil && args.Index.SkipHidden
	f := newFinder(skipHidden, args.Retry())

	var srv *http.Server
	var collector *metrics.Collector
	if args.MetricsAddr != "" {
		srv = startMetricsServer(args.MetricsAddr, f)
		collector = metrics.NewCollector(f, collectInterval)
		collector.Start()
	}

	var err error
	switch args.Command() {
	case "index":
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		_, err = runIndex(f, args.Index, sigChan, os.Stderr)
		signal.Stop(sigChan)
	case "search":
		err = runSearch(os.Stdout, f, args.Search)
	case "stats":
		err = runStats(os.Stdout, f, args.Stats)
	}

	if collector != nil {
		collector.Stop()
	}
	if srv != nil {
		stopMetricsServer(srv)
	}

	if err != nil {
		startup.LogFatal("%s failed: %v", args.Command(), err)
	}
}

func newFinder(skipHidden bool, retry filesystem.RetryConfig) *finder.Finder {
	idxConfig := indexer.DefaultConfig()
	idxConfig.SkipHidden = skipHidden
	idxConfig.Retry = retry
	searchConfig := search.DefaultConfig()
	searchConfig.Retry = retry
	return finder.New(indexer.New(idxConfig), search.NewEngine(searchConfig))
}

func startMetricsServer(addr string, f *finder.Finder) *http.Server {
	router := handlers.New(f).Router()
	srv := handlers.NewServer(addr, router)
	startup.LogMetricsServer(addr, router)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Metrics server error: %v", err)
		}
	}()
	return srv
}

func stopMetricsServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	startup.LogShutdownStep("Shutting down metrics server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Metrics server shutdown error: %v", err)
		return
	}
	startup.LogShutdownStepComplete("Metrics server stopped")
}

// runIndex indexes the configured roots and saves the catalog. A signal on
// signals stops the walk; whatever was indexed so far is still saved.
func runIndex(f *finder.Finder, cmd *config.IndexCmd, signals <-chan os.Signal, progressOut *os.File) (indexer.Summary, error) {
	startup.LogIndexStartup(startup.IndexRun{
		Roots:      cmd.Roots,
		Filters:    cmd.Filters,
		Exclude:    cmd.Exclude,
		SkipHidden: cmd.SkipHidden,
		Output:     cmd.Output,
	})

	if err := startup.PrepareOutput(cmd.Output); err != nil {
		return indexer.Summary{}, err
	}

	h, err := f.StartJob(indexer.Job{
		Roots:   cmd.Roots,
		Filters: cmd.Filters,
		Exclude: cmd.Exclude,
	}, newProgressPrinter(progressOut))
	if err != nil {
		return indexer.Summary{}, err
	}

	select {
	case <-h.Done():
	case sig := <-signals:
		startup.LogShutdownInitiated(sig.String())
		startup.LogShutdownStep("Stopping indexer")
		f.StopIndex(h)
		<-h.Done()
		startup.LogShutdownStepComplete("Indexer stopped")
	}

	summary := h.Wait()
	startup.LogIndexFinished(summary.Files, summary.Extensions, summary.Skipped, summary.Cancelled, summary.Duration)
	if summary.Cancelled {
		logging.Warn("Saving partial catalog of %d files", summary.Files)
	}

	path, err := f.Save(cmd.Output)
	if err != nil {
		return summary, err
	}
	startup.LogCatalogSaved(path)

	if summary.Cancelled {
		startup.LogShutdownComplete()
	}
	return summary, nil
}

// runSearch prints the path of every match, one per line.
func runSearch(w io.Writer, f *finder.Finder, cmd *config.SearchCmd) error {
	if err := f.Load(cmd.Index); err != nil {
		return err
	}

	res, err := f.Search(search.Query{
		Text:          cmd.Text,
		SearchContent: cmd.Content,
		UseRegex:      cmd.Regex,
		CaseSensitive: cmd.CaseSensitive,
	})
	if err != nil {
		return err
	}

	records := res.Records
	if cmd.Limit > 0 && len(records) > cmd.Limit {
		records = records[:cmd.Limit]
	}
	for _, r := range records {
		if _, err := fmt.Fprintln(w, r.Path); err != nil {
			return err
		}
	}

	logging.Info("%d matches in %d ms", len(res.Records), res.ElapsedMillis())
	return nil
}

// runStats prints totals of the saved catalog, broken down by category.
func runStats(w io.Writer, f *finder.Finder, cmd *config.StatsCmd) error {
	if err := f.Load(cmd.Index); err != nil {
		return err
	}

	stats := f.GetStats()

	fmt.Fprintf(w, "Catalog:     %s\n", cmd.Index)
	if at := f.IndexedAt(); !at.IsZero() {
		fmt.Fprintf(w, "Indexed:     %s\n", at.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "Files:       %d\n", stats.TotalFiles)
	fmt.Fprintf(w, "Extensions:  %d\n", stats.TotalExtensions)
	fmt.Fprintf(w, "Bytes:       %d\n", stats.TotalBytes)

	for _, c := range filetypes.Categories {
		if n := stats.ByCategory[string(c)]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", c, n)
		}
	}
	return nil
}

// progressPrinter renders job progress on a terminal. On anything else it
// stays quiet and leaves progress to the indexer's log lines.
type progressPrinter struct {
	indexer.Callbacks
	out *os.File
	tty bool
}

func newProgressPrinter(out *os.File) *progressPrinter {
	p := &progressPrinter{out: out}
	if out != nil {
		p.tty = term.IsTerminal(int(out.Fd()))
	}
	return p
}

func (p *progressPrinter) OnProgress(files, types int) {
	if p.tty {
		fmt.Fprintf(p.out, "\r  Indexed %d files (%d types)", files, types)
	}
}

func (p *progressPrinter) OnFinished(indexer.Summary) {
	if p.tty {
		fmt.Fprintln(p.out)
	}
}
