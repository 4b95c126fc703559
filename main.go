// Package main is the entry point for the fixgetters CLI.
package main

import "fixgetters.dev/pkg/fixgetters/cmd"

func main() {
	cmd.Execute()
}
