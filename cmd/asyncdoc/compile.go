package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/asyncdoc/asyncdoc/compiler"
	"github.com/asyncdoc/asyncdoc/internal/cli/config"
	"github.com/asyncdoc/asyncdoc/internal/cli/ui"
)

var (
	compileManifest string
	compileOut      string
	compileFormat   string
	compileVerbose  bool
)

func init() {
	compileCmd.Flags().StringVarP(&compileManifest, "manifest", "f", "", "Manifest file to compile (default from asyncdoc.yml)")
	compileCmd.Flags().StringVarP(&compileOut, "out", "o", "", "Output file (default from asyncdoc.yml)")
	compileCmd.Flags().StringVar(&compileFormat, "format", "", "Output format: json or yaml (default from asyncdoc.yml)")
	compileCmd.Flags().BoolVar(&compileVerbose, "verbose", false, "Show detailed compile output")
}

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a manifest into an AsyncAPI document",
	Long:  "Compile the declarative metadata in a manifest file into a cross-referenced AsyncAPI 3.0 document",
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		manifestPath := compileManifest
		if manifestPath == "" {
			manifestPath = cfg.Manifest
		}
		outPath := compileOut
		if outPath == "" {
			outPath = cfg.Output.Path
		}
		format := compileFormat
		if format == "" {
			format = cfg.Output.Format
		}

		if compileVerbose {
			fmt.Printf("Compiling %s...\n", manifestPath)
		}

		manifest, err := compiler.LoadManifest(manifestPath)
		if err != nil {
			return err
		}

		for _, name := range manifest.UnknownTypes() {
			fmt.Fprint(os.Stderr, ui.UnknownTypeWarning(name, manifest.TypeNames()).Format())
		}

		doc, err := manifest.Compile()
		if err != nil {
			return fmt.Errorf("compilation failed: %w", err)
		}

		var data []byte
		switch format {
		case "yaml":
			data, err = doc.ToYAML()
		case "json":
			data, err = doc.ToJSON()
		default:
			return fmt.Errorf("invalid output format %q (expected json or yaml)", format)
		}
		if err != nil {
			return err
		}

		if outPath == "-" {
			fmt.Println(string(data))
			return nil
		}

		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}

		successColor.Printf("✓ Compiled %s → %s", manifestPath, outPath)
		fmt.Printf(" (%s)\n", time.Since(startTime).Round(time.Millisecond))
		return nil
	},
}
