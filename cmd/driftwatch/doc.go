// Package driftwatch provides the command-line interface for the driftwatch
// tool. It configures subcommands (create, check, show, etc.), parses flags,
// and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/driftwatch/driftwatch/cmd/driftwatch"
//	func main() { driftwatch.Execute() }
package driftwatch
