package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"
	"sort"
	"syscall"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"docintro/pkg/cache"
	"docintro/pkg/config"
	"docintro/pkg/intro"
	"docintro/pkg/markup"
	"docintro/pkg/vfs"
)

const version = "0.3.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "render":
		runRender(os.Args[2:])
	case "warm":
		runWarm(os.Args[2:])
	case "list":
		runList(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	case "version":
		fmt.Printf("docintro %s\n", version)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	printUsageTo(os.Stdout)
}

// printUsageTo writes usage information to the provided writer.
func printUsageTo(w io.Writer) {
	fmt.Fprintln(w, `docintro - documentation intro-page builder

Usage:
  docintro <command> [options]

Commands:
  render      Build one page and print it as JSON
  warm        Pre-build all documents into the page cache
  list        List available document names
  validate    Validate configuration file
  version     Show version info

Run 'docintro <command> -h' for command-specific help.`)
}

// loadConfig loads and parses the config file
func loadConfig(path string) (*config.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg config.AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

// setupLogger creates the root logger at the requested level.
func setupLogger(logLevelStr string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	log.SetLevel(logrus.InfoLevel)

	if logLevelStr == "" {
		return log
	}
	level, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		log.Warnf("Invalid log level '%s', using default 'info'. Error: %v", logLevelStr, err)
	} else {
		log.SetLevel(level)
	}
	return log
}

// prepare loads + validates config and builds the reader and source.
func prepare(configFile, logLevel string) (*config.AppConfig, *logrus.Logger, *vfs.FSReader, *intro.Source, error) {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	log := setupLogger(logLevel)

	warnings, err := cfg.Validate()
	for _, w := range warnings {
		log.Warn(w)
	}
	if err != nil {
		return nil, nil, nil, nil, err
	}

	linkFn, err := markup.LinkFuncForPolicy(cfg.LinkPolicy)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	reader := vfs.NewFSReader(os.DirFS(cfg.DocsDir))
	source := intro.NewSource(reader, linkFn, log.WithField("component", "intro"))
	return cfg, log, reader, source, nil
}

// resolveName appends the configured default extension to names without one.
func resolveName(name, defaultExtension string) string {
	if path.Ext(name) == "" {
		return name + defaultExtension
	}
	return name
}

// runRender handles the render subcommand
func runRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")
	doc := fs.String("doc", "", "Document name to render (required)")
	logLevel := fs.String("loglevel", "", "Log level (debug, info, warn, error, fatal)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: docintro render [options]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  docintro render -doc getting-started\n")
		fmt.Fprintf(os.Stderr, "  docintro render -doc guides/intro.md -config docs.yaml\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *doc == "" {
		fmt.Fprintln(os.Stderr, "Error: -doc is required")
		fs.Usage()
		os.Exit(1)
	}

	cfg, log, _, source, err := prepare(*configFile, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	page, err := source.BuildPage(context.Background(), resolveName(*doc, cfg.DefaultExtension))
	if err != nil {
		log.Errorf("Page build failed: %v", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(page); err != nil {
		log.Errorf("Encoding page failed: %v", err)
		os.Exit(1)
	}
}

// runWarm handles the warm subcommand
func runWarm(args []string) {
	fs := flag.NewFlagSet("warm", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")
	logLevel := fs.String("loglevel", "", "Log level (debug, info, warn, error, fatal)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: docintro warm [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, log, reader, source, err := prepare(*configFile, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pageCache, err := cache.NewPageCache(source, reader, cfg.CacheDir, log.WithField("component", "cache"))
	if err != nil {
		log.Errorf("Opening page cache failed: %v", err)
		os.Exit(1)
	}
	defer pageCache.Close()

	go pageCache.RunGC(ctx, cfg.CacheGCInterval)

	names, err := reader.List(ctx)
	if err != nil {
		log.Errorf("Listing documents failed: %v", err)
		os.Exit(1)
	}

	built, failures, err := pageCache.Warm(ctx, names, int64(cfg.WarmConcurrency))
	if err != nil {
		log.Errorf("Warming interrupted: %v", err)
		os.Exit(1)
	}

	keys := make([]string, 0, len(failures))
	for name := range failures {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	for _, name := range keys {
		log.Warnf("Failed to build '%s': %v", name, failures[name])
	}
	log.Infof("Warmed %d of %d documents", built, len(names))
	if len(failures) > 0 {
		os.Exit(1)
	}
}

// runList handles the list subcommand
func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: docintro list [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	_, _, reader, _, err := prepare(*configFile, "error")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	names, err := reader.List(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Println(name)
	}
}

// runValidate handles the validate subcommand
func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: docintro validate [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	os.Exit(doValidate(*configFile, os.Stdout, os.Stderr))
}

// doValidate performs validation and writes output to provided writers.
// Returns exit code (0 = success, 1 = error).
func doValidate(configPath string, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	warnings, err := cfg.Validate()
	for _, w := range warnings {
		fmt.Fprintf(stdout, "WARN: %s\n", w)
	}
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, "Configuration valid.")
	return 0
}
