package main

import "github.com/driftwatch/driftwatch/cmd/driftwatch"

func main() { driftwatch.Execute() }
