package main

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing manifest")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter manifest",
	Long:  "Interactively scaffold an asyncdoc manifest in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		const path = "asyncdoc.manifest.yaml"

		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		var title string
		if err := survey.AskOne(&survey.Input{
			Message: "API title:",
		}, &title, survey.WithValidator(survey.Required)); err != nil {
			return err
		}

		version := "1.0.0"
		if err := survey.AskOne(&survey.Input{
			Message: "API version:",
			Default: version,
		}, &version); err != nil {
			return err
		}

		host := "localhost:8080"
		if err := survey.AskOne(&survey.Input{
			Message: "Server host:",
			Default: host,
		}, &host); err != nil {
			return err
		}

		protocol := ""
		if err := survey.AskOne(&survey.Select{
			Message: "Server protocol:",
			Options: []string{"ws", "wss", "mqtt", "amqp", "kafka"},
			Default: "ws",
		}, &protocol); err != nil {
			return err
		}

		channel := "events"
		if err := survey.AskOne(&survey.Input{
			Message: "Channel name:",
			Default: channel,
		}, &channel); err != nil {
			return err
		}

		manifest := map[string]interface{}{
			"name": "Api",
			"spec": map[string]interface{}{
				"title":   title,
				"version": version,
				"id":      "urn:uuid:" + uuid.NewString(),
			},
			"servers": []map[string]interface{}{
				{"name": "development", "host": host, "protocol": protocol},
			},
			"channels": []map[string]interface{}{
				{"name": channel, "address": "/" + channel},
			},
			"operations": []map[string]interface{}{
				{"name": "send" + channel, "action": "send", "channel": channel},
			},
		}

		data, err := yaml.Marshal(manifest)
		if err != nil {
			return fmt.Errorf("failed to render manifest: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		successColor.Printf("✓ Created %s\n", path)
		infoColor.Println("Run 'asyncdoc compile' to generate the document.")
		return nil
	},
}
