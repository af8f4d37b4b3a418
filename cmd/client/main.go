// Package main is the postboard command-line client. It drives the same
// delete and edit triggers a page would, against a running server.
package main

import (
	"os"

	"github.com/atinyakov/postboard/internal/client"
	"github.com/fatih/color"
)

var (
	version   string
	buildDate string
)

func main() {
	root := newRootCmd(os.Stdout, client.SurveyPrompter{})
	if err := root.Execute(); err != nil {
		color.New(color.FgHiRed, color.Bold).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
