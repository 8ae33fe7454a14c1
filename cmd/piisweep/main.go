// piisweep scans a directory tree for files containing PII (social security
// and credit card numbers) and writes a JSON report of flagged files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/ahrav/piisweep/internal/config"
	"github.com/ahrav/piisweep/internal/config/fileloader"
	"github.com/ahrav/piisweep/internal/detector"
	"github.com/ahrav/piisweep/internal/extractor"
	"github.com/ahrav/piisweep/internal/report"
	"github.com/ahrav/piisweep/internal/scanner"
	"github.com/ahrav/piisweep/internal/scanner/metrics"
	"github.com/ahrav/piisweep/internal/walker"
	"github.com/ahrav/piisweep/pkg/common/logger"
	"github.com/ahrav/piisweep/pkg/common/otel"
)

const serviceName = "piisweep"

type cliFlags struct {
	outputDir    string
	configPath   string
	workers      int
	timeoutSecs  int
	extractorURL string
	metricsAddr  string
	otlpEndpoint string
}

func main() {
	_, _ = maxprocs.Set()

	flags := &cliFlags{}

	rootCmd := &cobra.Command{
		Use:   "piisweep <scan_directory>",
		Short: "Scan a directory tree for files containing PII",
		Long: `piisweep recursively scans every file under a directory for text containing
PII (social security and credit card numbers), using an external content
extraction service to read arbitrary file formats, and writes a JSON report
of the flagged files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), args[0], flags)
		},
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: resolving working directory: %v\n", err)
		os.Exit(1)
	}

	rootCmd.Flags().StringVarP(&flags.outputDir, "output", "o", cwd, "directory the report file is written to")
	rootCmd.Flags().StringVar(&flags.configPath, "config", "", "path to a yaml config file")
	rootCmd.Flags().IntVar(&flags.workers, "workers", 0, "number of scan workers (default: CPU count)")
	rootCmd.Flags().IntVar(&flags.timeoutSecs, "timeout", 0, "global scan budget in seconds")
	rootCmd.Flags().StringVar(&flags.extractorURL, "extractor-url", "", "base URL of the content extraction service")
	rootCmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while scanning")
	rootCmd.Flags().StringVar(&flags.otlpEndpoint, "otlp-endpoint", "", "export traces to this OTLP gRPC endpoint")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// validateDir fails when path is missing or not a directory. Both the scan
// root and the output directory are checked before any scan work starts.
func validateDir(label, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("invalid %s: %s", label, path)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid %s, not a directory: %s", label, path)
	}
	return nil
}

func buildConfig(ctx context.Context, flags *cliFlags) (config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := fileloader.NewFileLoader(flags.configPath).Load(ctx)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	// Flags override anything the config file set.
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.timeoutSecs > 0 {
		cfg.ScanTimeoutSeconds = flags.timeoutSecs
	}
	if flags.extractorURL != "" {
		cfg.Extractor.BaseURL = flags.extractorURL
	}
	if flags.metricsAddr != "" {
		cfg.MetricsAddr = flags.metricsAddr
	}
	if flags.otlpEndpoint != "" {
		cfg.OTLPEndpoint = flags.otlpEndpoint
	}
	return cfg, nil
}

func run(ctx context.Context, scanDir string, flags *cliFlags) error {
	if err := validateDir("scan directory", scanDir); err != nil {
		return err
	}
	if err := validateDir("output directory", flags.outputDir); err != nil {
		return err
	}

	cfg, err := buildConfig(ctx, flags)
	if err != nil {
		return err
	}

	traceIDFn := func(ctx context.Context) string {
		return otel.GetTraceID(ctx)
	}
	log := logger.New(os.Stderr, logger.LevelInfo, serviceName, traceIDFn)

	log.Info(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0))

	tp, teardown, err := otel.InitTelemetry(log, otel.Config{
		ServiceName:      serviceName,
		ExporterEndpoint: cfg.OTLPEndpoint,
		Probability:      1,
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer teardown(context.Background())
	tracer := tp.Tracer(serviceName)

	m := metrics.New(serviceName)
	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.StartServer(cfg.MetricsAddr); err != nil {
				log.Error(ctx, "metrics server error", "error", err)
			}
		}()
	}

	detectors, err := detector.NewDefaultSet()
	if err != nil {
		return fmt.Errorf("building detectors: %w", err)
	}

	client := extractor.NewClient(extractor.Config{
		BaseURL:           cfg.Extractor.BaseURL,
		RequestTimeout:    cfg.Extractor.RequestTimeout(),
		RequestsPerSecond: cfg.Extractor.RequestsPerSecond,
		Burst:             cfg.Extractor.Burst,
	}, log, tracer)

	// An extraction service that never comes up degrades every file to a
	// per-file failure rather than aborting the run.
	if err := client.WaitReady(ctx); err != nil {
		log.Warn(ctx, "Extraction service not ready, files will fail extraction", "error", err)
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Printf("Scanning Directory: %s\n", cyan(scanDir))

	targets, err := walker.New(log).Walk(ctx, scanDir)
	if err != nil {
		return fmt.Errorf("enumerating files: %w", err)
	}

	scanID := uuid.New().String()
	s := scanner.NewScanner(scanID, client, detectors, scanner.Config{
		Workers:     cfg.Workers,
		ScanTimeout: cfg.ScanTimeout(),
	}, m, log, tracer)

	scanReport := s.Scan(ctx, targets)
	finishedAt := time.Now()

	fmt.Printf("Finished scan of %s at %s\n", scanDir, finishedAt.Format(time.RFC3339))

	sink := report.NewSink(flags.outputDir, log)
	reportPath, err := sink.Write(ctx, scanReport, finishedAt)
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if reportPath == "" {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Println(green("Found no PII in any files!"))
		return nil
	}

	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Printf("%s Outputting report in JSON format to: %s\n",
		yellow(fmt.Sprintf("Found PII in %d file(s).", scanReport.Len())), reportPath)
	return nil
}
