package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"file-indexer/internal/logging"

	"github.com/gorilla/mux"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// IndexRun describes an index run for the startup log
type IndexRun struct {
	Roots      []string
	Filters    []string
	Exclude    []string
	SkipHidden bool
	Output     string
}

// LogIndexStartup prints the banner, system information and the run
// configuration.
func LogIndexStartup(run IndexRun) {
	printBanner()
	logSystemInfo()

	section("CONFIGURATION")
	for _, root := range run.Roots {
		field("Root", root)
	}
	field("Filters", listOrAll(run.Filters))
	field("Exclude", listOrNone(run.Exclude))
	field("Skip hidden", enabledString(run.SkipHidden))
	field("Output", run.Output)
	field("LOG_LEVEL", logging.GetLevel())
	logging.Info("")
}

// PrepareOutput makes sure the directory of the catalog file exists and is
// writable, so a long index run does not fail at the end.
func PrepareOutput(path string) error {
	dir := filepath.Dir(path)
	if err := ensureDir(dir); err != nil {
		return fmt.Errorf("output directory %s: %w", dir, err)
	}
	if err := probeWrite(dir); err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	logging.Debug("  [OK] Output directory %s is writable", dir)
	return nil
}

func listOrAll(values []string) string {
	if len(values) == 0 {
		return "(all files)"
	}
	return strings.Join(values, ", ")
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

// LogIndexFinished logs the result of an index run
func LogIndexFinished(files, extensions int, skipped int64, cancelled bool, duration time.Duration) {
	title := "INDEX COMPLETE"
	if cancelled {
		title = "INDEX CANCELLED"
	}
	logging.Info("")
	section(title)
	field("Files", files)
	field("Extensions", extensions)
	field("Skipped", skipped)
	field("Duration", duration.Round(time.Millisecond))
}

// LogCatalogSaved logs the location of a saved catalog
func LogCatalogSaved(path string) {
	logging.Info("  [OK] Catalog saved to %s", path)
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   route.GetName(),
			})
		}

		return nil
	})

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})

	return routes, err
}

// LogMetricsServer logs the metrics listener address and, at debug level,
// its routes
func LogMetricsServer(addr string, router *mux.Router) {
	field("Metrics", "http://"+displayAddr(addr)+"/metrics")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}
		for _, route := range routes {
			logging.Debug("    %-6s %s", route.Method, route.Path)
		}
	}
}

// displayAddr turns ":9090" into "localhost:9090"
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	section("SHUTDOWN INITIATED (received " + signal + ")")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

const rule = "------------------------------------------------------------"

func section(title string) {
	logging.Info(rule)
	logging.Info(title)
	logging.Info(rule)
}

func field(label string, value any) {
	logging.Info("  %-14s %v", label+":", value)
}

func printBanner() {
	fmt.Fprintln(os.Stderr, rule+banner+"\n"+rule)
	field("Version", Version)
	field("Commit", Commit)
	field("Build time", BuildTime)
	field("Started", time.Now().Format(time.RFC1123))
	logging.Info("")
}

const banner = `
    _______ __        ____          __
   / ____(_) /__     /  _/___  ____/ /__  _  _____  _____
  / /_  / / / _ \    / // __ \/ __  / _ \| |/_/ _ \/ ___/
 / __/ / / /  __/  _/ // / / / /_/ /  __/>  </  __/ /
/_/   /_/_/\___/  /___/_/ /_/\__,_/\___/_/|_|\___/_/
`

func logSystemInfo() {
	section("SYSTEM INFORMATION")
	field("Go version", runtime.Version())
	field("OS/Arch", runtime.GOOS+"/"+runtime.GOARCH)
	field("CPUs", runtime.NumCPU())
	procs := runtime.GOMAXPROCS(0)
	if procs < runtime.NumCPU() {
		field("GOMAXPROCS", fmt.Sprintf("%d (CPU limit detected)", procs))
	} else {
		field("GOMAXPROCS", procs)
	}

	if logging.IsDebugEnabled() {
		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  %-14s %s", "Working dir:", wd)
		}
		if host, err := os.Hostname(); err == nil {
			logging.Debug("  %-14s %s", "Hostname:", host)
		}
	}
	logging.Info("")
}

// ensureDir creates dir if needed and fails when something other than a
// directory is in the way.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory")
	}
	return nil
}

func probeWrite(dir string) error {
	f, err := os.CreateTemp(dir, ".write-test-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	if err := os.Remove(name); err != nil {
		logging.Warn("failed to remove write probe %s: %v", name, err)
	}
	return nil
}
