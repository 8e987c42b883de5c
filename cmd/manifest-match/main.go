// Package main provides the entry point for the manifest-match CLI.
package main

import (
	"rsouza/manifest-match/cmd/base"
	"rsouza/manifest-match/cmd/match"
	"rsouza/manifest-match/cmd/root"
	"rsouza/manifest-match/cmd/serve"
)

func main() {
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(match.Cmd)
	root.Cmd.AddCommand(base.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		root.Log.Fatal(err)
	}
}
