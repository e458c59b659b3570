// Package core provides a small, stable facade over driftwatch's internal
// engine for external integrations. It deliberately re-exports a narrow API
// surface so other tools can depend on a stable import path without touching
// internal implementation packages.
//
// Example:
//
//	res, err := core.Create(ctx, core.Config{Root: "."}, "driftwatch.baseline.json")
//	if err != nil { /* handle */ }
//	chk, err := core.Check(ctx, core.Config{Root: "."}, "driftwatch.baseline.json")
//	if err != nil { /* handle */ }
//	_ = core.MarshalReport(os.Stdout, chk.Report)
package core
