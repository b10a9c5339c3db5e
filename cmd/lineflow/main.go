// Package main provides the CLI entry point for the Lineflow runtime.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lineflow/runtime/internal/cli"
	"github.com/lineflow/runtime/internal/config"
	"github.com/lineflow/runtime/internal/factory"
	"github.com/lineflow/runtime/internal/logger"
	"github.com/lineflow/runtime/internal/modules/sink"
	"github.com/lineflow/runtime/internal/modules/source"
	"github.com/lineflow/runtime/internal/runtime"
)

// Exit codes
const (
	ExitSuccess         = 0
	ExitValidationError = 1
	ExitParseError      = 2
	ExitRuntimeError    = 3
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Run command flags
	dryRun    bool
	fromStdin bool
	toStdout  bool

	// Build information (set via ldflags during build)
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitRuntimeError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lineflow",
	Short: "Lineflow - Declarative line pipeline runtime",
	Long: `Lineflow is a CLI tool for running declarative line pipelines.

It parses and validates pipeline configurations (JSON/YAML format),
then streams lines through the defined Source → Transforms → Sink pass.

Examples:
  # Validate a configuration file
  lineflow validate config.json

  # Run a pipeline
  lineflow run config.yaml

  # Read lines from stdin instead of the configured source
  cat input.txt | lineflow run --stdin config.yaml`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// Configure logger level based on flags
		if verbose {
			logger.SetLevel(slog.LevelDebug)
		} else if quiet {
			logger.SetLevel(slog.LevelError)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <config-file>",
	Short: "Validate a pipeline configuration file",
	Long: `Validate a pipeline configuration file against the schema.

Supports both JSON and YAML formats. The format is auto-detected
based on file extension (.json, .yaml, .yml) or content.

Exit codes:
  0 - Configuration is valid
  1 - Validation errors (schema violations)
  2 - Parse errors (invalid JSON/YAML syntax)

Examples:
  lineflow validate config.json
  lineflow validate pipeline.yaml
  lineflow validate --verbose config.json`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

var runCmd = &cobra.Command{
	Use:   "run <config-file>",
	Short: "Run a pipeline from a configuration file",
	Long: `Run a line pipeline defined in the configuration file.

The configuration file is first validated against the schema.
If validation fails, the pipeline will not run.

Flags:
  --dry-run   Run the full pass but discard lines instead of writing them
  --stdin     Read lines from stdin instead of the configured source
  --stdout    Write lines to stdout instead of the configured sink

Exit codes:
  0 - Pipeline ran successfully
  1 - Validation errors
  2 - Parse errors
  3 - Runtime errors

Examples:
  lineflow run config.json
  lineflow run --verbose pipeline.yaml
  lineflow run --dry-run config.json
  cat app.log | lineflow run --stdin --stdout config.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPipeline,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print version, commit hash, and build date information.",
	Run:   runVersion,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")

	// Run command flags
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the pass but discard lines instead of writing them")
	runCmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read lines from stdin instead of the configured source")
	runCmd.Flags().BoolVar(&toStdout, "stdout", false, "Write lines to stdout instead of the configured sink")

	// Add commands
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func runValidate(_ *cobra.Command, args []string) {
	configPath := args[0]

	if !quiet {
		fmt.Printf("Validating configuration: %s\n", configPath)
	}

	result := config.Load(configPath)

	if len(result.ParseErrors) > 0 {
		cli.PrintParseErrors(result.ParseErrors, verbose)
		os.Exit(ExitParseError)
	}

	if len(result.ValidationErrors) > 0 {
		cli.PrintValidationErrors(result.ValidationErrors, verbose, quiet)
		os.Exit(ExitValidationError)
	}

	if !quiet {
		fmt.Printf("✓ Configuration is valid (format: %s)\n", result.Format)
		if verbose {
			cli.PrintConfigSummary(result.Data)
		}
	}

	os.Exit(ExitSuccess)
}

func runPipeline(_ *cobra.Command, args []string) {
	configPath := args[0]

	if !quiet {
		fmt.Printf("Loading pipeline configuration: %s\n", configPath)
	}

	result := config.Load(configPath)

	if len(result.ParseErrors) > 0 {
		cli.PrintParseErrors(result.ParseErrors, verbose)
		os.Exit(ExitParseError)
	}

	if len(result.ValidationErrors) > 0 {
		cli.PrintValidationErrors(result.ValidationErrors, verbose, quiet)
		os.Exit(ExitValidationError)
	}

	if !quiet {
		fmt.Printf("✓ Configuration loaded successfully (format: %s)\n", result.Format)
	}

	pipeline, err := config.ConvertToPipeline(result.Data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Failed to convert configuration: %v\n", err)
		os.Exit(ExitRuntimeError)
	}

	if verbose {
		fmt.Printf("  Pipeline: %s (v%s)\n", pipeline.Name, pipeline.Version)
		if pipeline.Description != "" {
			fmt.Printf("  Description: %s\n", pipeline.Description)
		}
	}

	// Create module instances; --stdin and --stdout override the configured
	// source and sink with the process streams.
	sourceModule, err := factory.CreateSourceModule(pipeline.Source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Failed to create source module: %v\n", err)
		os.Exit(ExitRuntimeError)
	}
	if fromStdin {
		sourceModule = source.NewReader(os.Stdin)
	}

	transformModules, err := factory.CreateTransformModules(pipeline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Failed to create transform modules: %v\n", err)
		os.Exit(ExitRuntimeError)
	}

	sinkModule, err := factory.CreateSinkModule(pipeline.Sink)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Failed to create sink module: %v\n", err)
		os.Exit(ExitRuntimeError)
	}
	if toStdout {
		sinkModule = sink.NewWriter(os.Stdout)
	}

	executor := runtime.NewExecutorWithModules(sourceModule, transformModules, sinkModule, dryRun)

	if !quiet {
		if dryRun {
			fmt.Println("Running pipeline (dry-run mode - lines will be discarded)...")
		} else {
			fmt.Println("Running pipeline...")
		}
	}

	runResult, err := executor.Execute(pipeline)

	cli.PrintRunResult(runResult, err, cli.OutputOptions{
		Verbose: verbose,
		Quiet:   quiet,
		DryRun:  dryRun,
	})

	if err != nil {
		os.Exit(ExitRuntimeError)
	}

	os.Exit(ExitSuccess)
}

func runVersion(_ *cobra.Command, _ []string) {
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Commit: %s\n", commit)
	fmt.Printf("Build Date: %s\n", buildDate)
}
