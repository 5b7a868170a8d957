// Package main is the entry point for the apicheck CLI.
package main

import "apicheck.dev/pkg/apicheck/cmd"

func main() {
	cmd.Execute()
}
