package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	infoColor    = color.New(color.FgCyan)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "asyncdoc",
		Short: "AsyncAPI document compiler",
		Long: `asyncdoc compiles declarative messaging metadata into AsyncAPI 3.0
specification documents: servers, channels, operations, messages, and
reusable components, fully cross-referenced.`,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
