// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"judgment-extract/internal/classifier"
	"judgment-extract/internal/classifier/openai"
	"judgment-extract/internal/config"
	"judgment-extract/internal/core"
	"judgment-extract/internal/logging"
	"judgment-extract/internal/observability"
	"judgment-extract/internal/parallel"
	"judgment-extract/internal/preprocessors/pdftext"
	"judgment-extract/internal/record"
	"judgment-extract/internal/resilience"
	"judgment-extract/internal/store"
	"judgment-extract/internal/version"

	"judgment-extract/internal/formatters"
	_ "judgment-extract/internal/formatters/csv"
	_ "judgment-extract/internal/formatters/json"
	_ "judgment-extract/internal/formatters/text"
	_ "judgment-extract/internal/formatters/xlsx"
	_ "judgment-extract/internal/formatters/yaml"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) (*config.Config, string) {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		return config.DefaultConfig(), ""
	}
	if err := config.ValidateConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Invalid configuration in %s: %v\n", configPath, err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		return config.DefaultConfig(), ""
	}
	return cfg, configPath
}

// configFlags holds command line flag values
type configFlags struct {
	format    string
	fields    string
	output    string
	workers   int
	recursive bool
	classify  bool
	store     string
	verbose   bool
	debug     bool
	noColor   bool
	quiet     bool
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	format    string
	fields    string
	output    string
	workers   int
	recursive bool
	classify  bool
	storeDSN  string
	verbose   bool
	debug     bool
	noColor   bool
	quiet     bool
}

// resolveConfiguration resolves final configuration values from config file,
// profile and command line flags, in increasing precedence
func resolveConfiguration(cfg *config.Config, activeProfile *config.Profile, flags *configFlags, isSet func(string) bool) *finalConfiguration {
	final := &finalConfiguration{}

	// Format
	final.format = "text" // default fallback
	if cfg != nil && cfg.Defaults.Format != "" {
		final.format = cfg.Defaults.Format
	}
	if activeProfile != nil && activeProfile.Format != "" {
		final.format = activeProfile.Format
	}
	if isSet("format") && flags.format != "" {
		final.format = flags.format
	}
	final.format = strings.ToLower(final.format)

	// Fields to extract
	final.fields = "all" // default fallback
	if cfg != nil && cfg.Defaults.Fields != "" {
		final.fields = cfg.Defaults.Fields
	}
	if activeProfile != nil && activeProfile.Fields != "" {
		final.fields = activeProfile.Fields
	}
	if isSet("fields") && flags.fields != "" {
		final.fields = flags.fields
	}

	// Output file
	if cfg != nil {
		final.output = cfg.Defaults.Output
	}
	if isSet("output") {
		final.output = flags.output
	}

	// Workers
	final.workers = config.DefaultWorkers()
	if cfg != nil && cfg.Defaults.Workers > 0 {
		final.workers = cfg.Defaults.Workers
	}
	if activeProfile != nil && activeProfile.Workers > 0 {
		final.workers = activeProfile.Workers
	}
	if isSet("workers") && flags.workers > 0 {
		final.workers = flags.workers
	}

	// Booleans: file defaults, then profile, then explicit flags
	if cfg != nil {
		final.recursive = cfg.Defaults.Recursive
		final.classify = cfg.Defaults.Classify
		final.verbose = cfg.Defaults.Verbose
		final.debug = cfg.Defaults.Debug
		final.noColor = cfg.Defaults.NoColor
		final.quiet = cfg.Defaults.Quiet
	}
	if activeProfile != nil {
		final.recursive = activeProfile.Recursive
		final.classify = activeProfile.Classify
		final.verbose = activeProfile.Verbose
		final.debug = activeProfile.Debug
		final.noColor = activeProfile.NoColor
	}
	if isSet("recursive") {
		final.recursive = flags.recursive
	}
	if isSet("classify") {
		final.classify = flags.classify
	}
	if isSet("verbose") {
		final.verbose = flags.verbose
	}
	if isSet("debug") {
		final.debug = flags.debug
	}
	if isSet("no-color") {
		final.noColor = flags.noColor
	}
	if isSet("quiet") {
		final.quiet = flags.quiet
	}

	// Record store
	if cfg != nil {
		final.storeDSN = cfg.Store.DSN
	}
	if activeProfile != nil && activeProfile.Store != "" {
		final.storeDSN = activeProfile.Store
	}
	if isSet("store") {
		final.storeDSN = flags.store
	}

	return final
}

// handleProfiles lists profiles or resolves the requested one
func handleProfiles(cfg *config.Config, listProfiles bool, profileName, configPath string, w io.Writer) (*config.Profile, bool, error) {
	if listProfiles {
		profiles := cfg.ListProfiles()
		if configPath == "" {
			fmt.Fprintln(w, "No configuration file found. Built-in profiles:")
		} else {
			fmt.Fprintf(w, "Profiles in %s:\n", configPath)
		}
		if len(profiles) == 0 {
			fmt.Fprintln(w, "  (none)")
		}
		for _, name := range profiles {
			profile := cfg.GetProfile(name)
			if profile != nil && profile.Description != "" {
				fmt.Fprintf(w, "  - %s: %s\n", name, profile.Description)
			} else {
				fmt.Fprintf(w, "  - %s\n", name)
			}
		}
		return nil, true, nil
	}

	if profileName == "" {
		return nil, false, nil
	}
	activeProfile := cfg.GetProfile(profileName)
	if activeProfile == nil {
		return nil, false, fmt.Errorf("profile '%s' not found; available: %s", profileName, strings.Join(cfg.ListProfiles(), ", "))
	}
	return activeProfile, false, nil
}

// outputColumns picks the formatter columns for the resolved field selection
func outputColumns(fields string, classify bool) []string {
	selected := core.SplitFields(fields)
	if len(selected) == 0 || (len(selected) == 1 && strings.TrimSpace(selected[0]) == "all") {
		return nil
	}

	enabled := core.ParseFieldsToRun(selected)
	columns := []string{record.FieldFileName, record.FieldLanguage, record.FieldDocumentType}
	for _, f := range record.ExtractedFields {
		if enabled[f] {
			columns = append(columns, f)
		}
	}
	if classify {
		columns = append(columns, record.LabelFields...)
	}
	return columns
}

// buildClassifier returns the configured classifier. A missing API key
// falls back to the rule classifier with a warning.
func buildClassifier(cfg *config.Config, logger *zap.Logger) classifier.Classifier {
	if cfg.Classifier.Provider != config.ProviderOpenAI {
		return classifier.NewRuleClassifier(logger)
	}

	client, err := openai.NewClient(openai.Config{
		BaseURL:          cfg.Classifier.BaseURL,
		Model:            cfg.Classifier.Model,
		APIKeyEnv:        cfg.Classifier.APIKeyEnv,
		Timeout:          time.Duration(cfg.Classifier.TimeoutSeconds) * time.Second,
		Retry:            resilience.ClassifierRetryConfig(cfg.Classifier.MaxRetries),
		FailureThreshold: cfg.Classifier.FailureThreshold,
	}, logger)
	if err != nil {
		logger.Warn("semantic classifier unavailable, using rule classifier", zap.Error(err))
		return classifier.NewRuleClassifier(logger)
	}
	return client
}

// writeOutput writes content to path, or to stdout when path is empty
func writeOutput(path string, content []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(content)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	return os.WriteFile(path, content, 0o600)
}

// readTextInput returns the -text value, reading stdin for "-"
func readTextInput(value string, stdin io.Reader) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `judgment-extract %s

Extracts structured fields from Hong Kong court judgments (English and Chinese).

Usage:
  judgment-extract -file <path|dir|glob> [options]
  judgment-extract -text <judgment text | -> [options]

Options:
`, version.Short())
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Fields: %s
Formats: %s
`, strings.Join(record.ExtractedFields, ", "), strings.Join(formatters.List(), ", "))
}

func main() {
	os.Exit(run())
}

func run() int {
	var flags configFlags
	inputFile := flag.String("file", "", "Judgment file, directory or glob pattern to process")
	inputText := flag.String("text", "", "Judgment text to process directly ('-' reads stdin)")
	configFile := flag.String("config", "", "Configuration file (YAML)")
	profileName := flag.String("profile", "", "Named profile from the configuration file")
	listProfiles := flag.Bool("list-profiles", false, "List available profiles and exit")
	flag.StringVar(&flags.format, "format", "text", "Output format: "+strings.Join(formatters.List(), ", "))
	flag.StringVar(&flags.fields, "fields", "all", "Comma-separated fields to extract, or 'all'")
	flag.StringVar(&flags.output, "output", "", "Write results to this file instead of stdout")
	flag.IntVar(&flags.workers, "workers", config.DefaultWorkers(), "Number of files processed in parallel")
	flag.BoolVar(&flags.recursive, "recursive", false, "Recurse into directories")
	flag.BoolVar(&flags.classify, "classify", false, "Fill label fields with the configured classifier")
	flag.StringVar(&flags.store, "store", "", "SQLite database to save records into")
	flag.BoolVar(&flags.debug, "debug", false, "Debug logging and per-step timing")
	flag.BoolVar(&flags.verbose, "verbose", false, "Show empty fields and untruncated evidence")
	flag.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flags.quiet, "quiet", false, "Only print errors")
	showVersion := flag.Bool("version", false, "Print version and exit")
	showHelp := flag.Bool("help", false, "Show help")
	flag.Usage = printUsage
	flag.Parse()

	if *showHelp {
		printUsage()
		return 0
	}
	if *showVersion {
		fmt.Println(version.Info())
		return 0
	}

	cfg, configPath := loadConfiguration(*configFile)
	activeProfile, done, err := handleProfiles(cfg, *listProfiles, *profileName, configPath, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if done {
		return 0
	}

	if *inputFile == "" && *inputText == "" {
		fmt.Fprintln(os.Stderr, "Error: one of -file or -text is required")
		printUsage()
		return 1
	}

	final := resolveConfiguration(cfg, activeProfile, &flags, isFlagSet)
	if _, ok := formatters.Get(final.format); !ok {
		fmt.Fprintf(os.Stderr, "Error: unsupported format '%s'. Available formats: %s\n", final.format, strings.Join(formatters.List(), ", "))
		return 1
	}
	if info := formatters.GetFormatInfo(final.format); info.Binary && final.output == "" {
		fmt.Fprintf(os.Stderr, "Error: format '%s' is binary; use -output to name a %s file\n", final.format, info.Extension)
		return 1
	}

	logger, err := logging.New(logging.Options{Debug: final.debug, Verbose: final.verbose, Quiet: final.quiet})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	var observer *observability.StandardObserver
	switch {
	case final.debug:
		observer = observability.NewStandardObserver(observability.ObservabilityDebug, os.Stderr)
	case final.verbose:
		observer = observability.NewStandardObserver(observability.ObservabilityMetrics, nil)
	}
	defer logTimings(logger, observer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := core.OptionsFromConfig(cfg, activeProfile)
	opts.Fields = core.SplitFields(final.fields)
	opts.Observer = observer
	pipeline := &parallel.Pipeline{Extractor: core.New(opts, logger)}

	if final.classify {
		pipeline.Classifier = buildClassifier(cfg, logger)
	}
	if final.storeDSN != "" {
		st, err := store.Open(ctx, final.storeDSN, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer st.Close()
		pipeline.Store = st
	}

	var records []*record.Record
	failed := 0

	if *inputText != "" {
		text, err := readTextInput(*inputText, os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		result := pipeline.Process(ctx, record.RawDocument{Text: text}, logger)
		if result.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", result.Err)
			return 1
		}
		records = append(records, result.Record)
	} else {
		discovered, err := getFilesToProcess(*inputFile, final.recursive)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		for _, s := range discovered.SkippedFiles {
			logger.Info("skipping file", zap.String("file", s.Path), zap.String("reason", s.Reason))
		}
		if len(discovered.FilesToProcess) == 0 {
			fmt.Fprintf(os.Stderr, "Error: no PDF or text files found at %s\n", *inputFile)
			return 1
		}

		decoder, err := pdftext.New(pdftext.Options{
			Backends: cfg.Decoder.Backends,
			MaxPages: cfg.Decoder.MaxPages,
			Validate: cfg.Decoder.Validate,
		}, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		pipeline.Decoder = decoder

		var progress parallel.ProgressCallback
		if !final.quiet && !final.debug && isTerminal(os.Stderr) {
			progress = func(completed, total int, currentFile string) {
				fmt.Fprintf(os.Stderr, "\r\033[KProcessing %d/%d: %s", completed, total, filepath.Base(currentFile))
				if completed == total {
					fmt.Fprintln(os.Stderr)
				}
			}
		}

		processor := parallel.NewProcessor(final.workers, pipeline, observer, logger)
		results, stats, err := processor.ProcessFiles(ctx, discovered.FilesToProcess, progress)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		for _, r := range results {
			if r.Err != nil {
				failed++
				if !final.quiet {
					fmt.Fprintf(os.Stderr, "Failed: %s: %v\n", r.FilePath, r.Err)
				}
				continue
			}
			records = append(records, r.Record)
		}
		logger.Info("processing finished",
			zap.Int("files", stats.TotalFiles),
			zap.Int("failed", stats.FailedFiles),
			zap.Int("classify_errors", stats.ClassifyErrors),
			zap.Int("store_errors", stats.StoreErrors),
			zap.Duration("duration", stats.TotalDuration))
	}

	content, err := formatters.Export(final.format, records, formatters.FormatterOptions{
		Fields:  outputColumns(final.fields, final.classify),
		Verbose: final.verbose,
		NoColor: final.noColor || final.output != "" || !isTerminal(os.Stdout),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := writeOutput(final.output, content); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing output: %v\n", err)
		return 1
	}
	if final.output != "" && !final.quiet {
		fmt.Fprintf(os.Stderr, "Wrote %d record(s) to %s\n", len(records), final.output)
	}

	if failed > 0 && len(records) == 0 {
		return 1
	}
	return 0
}

// logTimings reports the aggregated per-component timings at info level.
func logTimings(logger *zap.Logger, observer *observability.StandardObserver) {
	for _, s := range observer.Summary() {
		logger.Info("timing",
			zap.String("component", s.Component),
			zap.String("operation", s.Operation),
			zap.Int("calls", s.Calls),
			zap.Int("failures", s.Failures),
			zap.Duration("mean", s.Mean()),
			zap.Duration("max", s.Max))
	}
}
