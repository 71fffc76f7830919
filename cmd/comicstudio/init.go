package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"comicstudio/internal/config"
)

func initCmd() *cobra.Command {
	var projectName string
	var dsn string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new comicstudio project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName, dsn)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	cmd.Flags().StringVar(&dsn, "dsn", config.DefaultDSN, "Storage DSN (sqlite://, postgres://, redis://, memory://)")
	return cmd
}

func runInit(projectName, dsn string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}
	if _, err := os.Stat(templatesPath); err == nil {
		return fmt.Errorf("%s already exists", templatesPath)
	}

	cfg := config.DefaultProjectConfig(projectName)
	cfg.Storage.DSN = dsn
	configContents, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", configPath, err)
	}
	templateContents, err := yaml.Marshal(config.DefaultTemplates())
	if err != nil {
		return fmt.Errorf("encoding %s: %w", templatesPath, err)
	}

	if err := os.WriteFile(configPath, configContents, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}
	if err := os.WriteFile(templatesPath, templateContents, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", templatesPath, err)
	}

	return nil
}
