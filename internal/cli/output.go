// Package cli provides CLI output formatting and display functions.
package cli

import (
	"fmt"
	"os"

	"github.com/lineflow/runtime/pkg/stream"
)

// OutputOptions configures CLI output behavior.
type OutputOptions struct {
	Verbose bool
	Quiet   bool
	DryRun  bool
}

// PrintRunResult displays the pipeline run result.
func PrintRunResult(result *stream.RunResult, err error, opts OutputOptions) {
	if result == nil {
		fmt.Fprintln(os.Stderr, "✗ No run result available")
		return
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "✗ Pipeline run failed")
		if result.Error != nil {
			if result.Error.Module != "" {
				fmt.Fprintf(os.Stderr, "  Module: %s\n", result.Error.Module)
			}
			fmt.Fprintf(os.Stderr, "  Error: %s\n", result.Error.Message)
		}
		if result.FailedLine > 0 {
			fmt.Fprintf(os.Stderr, "  Failed at line: %d\n", result.FailedLine)
		}
		if result.LinesProcessed > 0 {
			fmt.Fprintf(os.Stderr, "  Lines written before failure: %d\n", result.LinesProcessed)
		}
		return
	}

	if !opts.Quiet {
		fmt.Println("✓ Pipeline run completed")
		fmt.Printf("  Status: %s\n", result.Status)
		fmt.Printf("  Lines processed: %d\n", result.LinesProcessed)
		if opts.Verbose {
			fmt.Printf("  Duration: %v\n", result.CompletedAt.Sub(result.StartedAt))
		}
		if opts.DryRun {
			fmt.Println("  No lines were written to the sink (dry-run mode)")
		}
	}
}

// PrintConfigSummary prints pipeline name and version if available.
func PrintConfigSummary(data map[string]interface{}) {
	if data == nil {
		return
	}

	pipeline, ok := data["pipeline"].(map[string]interface{})
	if !ok {
		return
	}

	if name, ok := pipeline["name"].(string); ok {
		fmt.Printf("  Pipeline: %s\n", name)
	}
	if version, ok := pipeline["version"].(string); ok {
		fmt.Printf("  Version: %s\n", version)
	}
}
