package core_test

import (
	"context"
	"fmt"
	"os"

	"github.com/driftwatch/driftwatch/pkg/core"
)

// ExampleCreate demonstrates how to record a baseline for a directory.
func ExampleCreate() {
	// 1. Configure the scan
	cfg := core.Config{
		Root:    ".", // Scan the current directory
		Threads: 4,   // Number of concurrent hashing workers
	}

	// 2. Record the baseline
	res, err := core.Create(context.Background(), cfg, "driftwatch.baseline.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Create failed: %v\n", err)
		return
	}

	fmt.Printf("Recorded %d files in %s\n", res.Inventory.Count(), res.Duration)
}

// ExampleCheck shows how to rescan and classify drift against a baseline.
func ExampleCheck() {
	cfg := core.Config{Root: "."}

	result, err := core.Check(context.Background(), cfg, "driftwatch.baseline.json")
	if err != nil {
		panic(err)
	}

	if !result.Report.HasChanges() {
		fmt.Println("No changes detected.")
	} else {
		fmt.Printf("Detected %d changes.\n", result.Report.TotalChanges())
		// Helper to write JSON output to stdout
		_ = core.MarshalReport(os.Stdout, result.Report)
	}
}
