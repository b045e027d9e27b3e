// Package main provides the inspirecite CLI entry point.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verbose enables debug logging to stderr
var verbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "inspirecite",
	Short: "Citation recognition and cross-reference resolution",
	Long: `inspirecite resolves in-text citation markers (bracketed numbers,
superscripts, author-year phrases) to bibliographic entries, even when the
marker is malformed or the document's numbering disagrees with the canonical
reference list.

All commands output JSON by default for easy integration with editors and
viewer plugins; pass --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to stderr")
	rootCmd.Version = Version
}

// logger returns the diagnostic logger for the current invocation.
func logger() zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
