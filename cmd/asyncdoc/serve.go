package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/asyncdoc/asyncdoc/compiler"
	"github.com/asyncdoc/asyncdoc/internal/cli/config"
	"github.com/asyncdoc/asyncdoc/internal/web"
)

var (
	serveManifest string
	serveAddr     string
)

func init() {
	serveCmd.Flags().StringVarP(&serveManifest, "manifest", "f", "", "Manifest file to compile (default from asyncdoc.yml)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from asyncdoc.yml)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Compile and serve the document for preview",
	Long:  "Compile the manifest and serve the resulting AsyncAPI document over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		manifestPath := serveManifest
		if manifestPath == "" {
			manifestPath = cfg.Manifest
		}
		addr := serveAddr
		if addr == "" {
			addr = fmt.Sprintf("%s:%d", cfg.Serve.Host, cfg.Serve.Port)
		}

		manifest, err := compiler.LoadManifest(manifestPath)
		if err != nil {
			return err
		}
		doc, err := manifest.Compile()
		if err != nil {
			return fmt.Errorf("compilation failed: %w", err)
		}

		logger, err := zap.NewDevelopment()
		if err != nil {
			logger = zap.NewNop()
		}
		defer func() { _ = logger.Sync() }()

		infoColor.Printf("Serving %s at http://%s/\n", doc.Info.Title, addr)
		return web.NewServer(doc, logger).Run(addr)
	},
}
